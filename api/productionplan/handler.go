// Package productionplan exposes the production planner over HTTP.
package productionplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/prodplan/core/events"
	"github.com/kilianp07/prodplan/core/model"
	coremon "github.com/kilianp07/prodplan/core/monitoring"
	"github.com/kilianp07/prodplan/core/production"
	"github.com/kilianp07/prodplan/infra/logger"
	"github.com/kilianp07/prodplan/internal/eventbus"
)

// PlanIDHeader carries the identifier assigned to a computed plan.
const PlanIDHeader = "X-Plan-ID"

// Failure reasons published on the event bus.
const (
	ReasonDecode      = "decode"
	ReasonValidation  = "validation"
	ReasonUnknownKind = "unknown_kind"
	ReasonInfeasible  = "infeasible"
	ReasonInternal    = "internal"
)

// Handler serves POST /productionplan.
type Handler struct {
	planner *production.Planner
	bus     *eventbus.Bus[any]
	log     logger.Logger
	maxBody int64
	now     func() time.Time
}

// NewHandler returns a Handler computing plans with planner. Computed plans
// and rejected requests are published on bus when it is not nil. A
// non-positive maxBody disables the request size limit.
func NewHandler(planner *production.Planner, bus *eventbus.Bus[any], log logger.Logger, maxBody int64) *Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handler{planner: planner, bus: bus, log: log, maxBody: maxBody, now: time.Now}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	req, err := model.DecodeRequest(body)
	if err != nil {
		h.fail(ReasonDecode, err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid payload: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ReasonValidation, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Infof("received request for load: %.1f MW", req.Load)

	start := h.now()
	res, err := h.planner.Compute(req)
	elapsed := time.Since(start)
	var unknown *model.UnknownUnitKindError
	switch {
	case errors.As(err, &unknown):
		h.fail(ReasonUnknownKind, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, model.ErrInfeasibleLoad):
		h.fail(ReasonInfeasible, err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.fail(ReasonInternal, err)
		coremon.CaptureException(err, map[string]string{"module": "api"})
		h.log.Errorf("compute plan: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	planID := uuid.NewString()
	if h.bus != nil {
		h.bus.Publish(events.PlanEvent{PlanID: planID, Time: start, Request: req, Result: res, Duration: elapsed})
	}
	w.Header().Set(PlanIDHeader, planID)
	writeJSON(w, http.StatusOK, res.Plan())
}

func (h *Handler) fail(reason string, err error) {
	h.log.Warnf("request rejected (%s): %v", reason, err)
	if h.bus != nil {
		h.bus.Publish(events.FailureEvent{Reason: reason, Err: err, Time: h.now()})
	}
}

// NewHealthHandler answers GET / with a liveness message.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "API is active"})
	})
}

// Recover turns panics raised by next into a 500 response and reports them
// to the monitor.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				coremon.CapturePanic(v, map[string]string{"module": "api", "path": r.URL.Path})
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
