package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	errs    []error
	panics  []any
	tags    map[string]string
	flushed time.Duration
}

func (r *recorder) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = tags
}
func (r *recorder) CapturePanic(v any, tags map[string]string) {
	r.panics = append(r.panics, v)
	r.tags = tags
}
func (r *recorder) Flush(d time.Duration) { r.flushed = d }

func TestGlobalMonitor(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	defer Init(NopMonitor{})

	CaptureException(errors.New("boom"), map[string]string{"module": "api"})
	CaptureException(nil, nil)
	assert.Len(t, rec.errs, 1)
	assert.Equal(t, "api", rec.tags["module"])

	func() {
		defer func() { CapturePanic(recover(), map[string]string{"module": "worker"}) }()
		panic("bad input")
	}()
	assert.Equal(t, []any{"bad input"}, rec.panics)

	Flush(time.Second)
	assert.Equal(t, time.Second, rec.flushed)
}

func TestInitIgnoresNil(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	defer Init(NopMonitor{})
	Init(nil)
	CaptureException(errors.New("x"), nil)
	assert.Len(t, rec.errs, 1)
}

func TestPanicError(t *testing.T) {
	base := errors.New("inner")
	assert.ErrorIs(t, PanicError(base), base)
	assert.EqualError(t, PanicError(42), "panic: 42")
}
