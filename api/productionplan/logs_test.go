package productionplan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prodplan/core/model"
	"github.com/kilianp07/prodplan/core/planlog"
)

type memStore struct {
	recs []planlog.LogRecord
	last planlog.LogQuery
}

func (m *memStore) Append(_ context.Context, r planlog.LogRecord) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(_ context.Context, q planlog.LogQuery) ([]planlog.LogRecord, error) {
	m.last = q
	var res []planlog.LogRecord
	for _, r := range m.recs {
		if q.Match(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func seededStore(t *testing.T) *memStore {
	t.Helper()
	store := &memStore{}
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, plant := range []string{"gas1", "wind1", "gas1"} {
		require.NoError(t, store.Append(context.Background(), planlog.LogRecord{
			PlanID:    string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Request:   model.Request{Load: 100, Powerplants: []model.PlantSpec{{Name: plant}}},
			Feasible:  i != 1,
		}))
	}
	return store
}

func getLogs(h http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestLogHandler_AuthAndFilters(t *testing.T) {
	store := seededStore(t)
	h := NewLogHandler(store, "tok")

	rr := getLogs(h, "/api/productionplan/logs?plant=gas1&feasible=true&limit=1&start=2024-05-01T00:00:00Z", "tok")
	require.Equal(t, http.StatusOK, rr.Code)
	var out []planlog.LogRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "gas1", store.last.Plant)
	require.NotNil(t, store.last.Feasible)
	assert.True(t, *store.last.Feasible)
	assert.Equal(t, 1, store.last.Limit)

	rr = getLogs(h, "/api/productionplan/logs", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = getLogs(h, "/api/productionplan/logs", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogHandler_NoToken(t *testing.T) {
	h := NewLogHandler(&memStore{}, "")
	rr := getLogs(h, "/api/productionplan/logs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestLogHandler_BadQuery(t *testing.T) {
	h := NewLogHandler(&memStore{}, "")
	for _, q := range []string{"start=yesterday", "end=2024", "feasible=maybe", "limit=-3", "limit=x"} {
		rr := getLogs(h, "/api/productionplan/logs?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}
