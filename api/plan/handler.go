package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avigny/taskforge/core/extract"
	corelogger "github.com/avigny/taskforge/core/logger"
	coremetrics "github.com/avigny/taskforge/core/metrics"
	"github.com/avigny/taskforge/core/model"
	"github.com/avigny/taskforge/core/schedule"
	"github.com/avigny/taskforge/infra/ai"
	"github.com/avigny/taskforge/infra/fetch"
)

// SourceFactory builds a task source from a per-request AI configuration.
// Credentials travel with the request and are never stored service-side.
type SourceFactory func(cfg ai.Config) (extract.TaskSource, error)

// Handler serves the planning API.
type Handler struct {
	source  extract.TaskSource // default source, may be nil
	factory SourceFactory
	fetcher *fetch.Fetcher
	planner schedule.Config
	sink    coremetrics.MetricsSink
	log     corelogger.Logger
}

// NewHandler creates a Handler. source may be nil when every request carries
// its own AI configuration; sink may be nil to disable metrics.
func NewHandler(source extract.TaskSource, factory SourceFactory, fetcher *fetch.Fetcher, planner schedule.Config, sink coremetrics.MetricsSink, log corelogger.Logger) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Handler{source: source, factory: factory, fetcher: fetcher, planner: planner, sink: sink, log: log}
}

// Register attaches the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/plan", http.HandlerFunc(h.generate))
	mux.Handle("/api/ai/test", http.HandlerFunc(h.testAI))
}

type planRequest struct {
	PRD                string               `json:"prd"`
	PRDURL             string               `json:"prdUrl"`
	Role               model.Role           `json:"role"`
	Deadline           string               `json:"deadline"`
	BlackoutSlots      []model.BlackoutSlot `json:"blackoutSlots"`
	WorkingHoursPerDay float64              `json:"workingHoursPerDay,omitempty"`
	MaxHoursPerDay     float64              `json:"maxHoursPerDay,omitempty"`
	AIConfig           *ai.Config           `json:"aiConfig,omitempty"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	reqID := uuid.NewString()
	w.Header().Set("X-Request-ID", reqID)

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Role.Valid() {
		http.Error(w, fmt.Sprintf("unknown role %q", req.Role), http.StatusBadRequest)
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prd := req.PRD
	if prd == "" && req.PRDURL != "" {
		if h.fetcher == nil {
			http.Error(w, "document fetching is disabled", http.StatusBadRequest)
			return
		}
		prd, err = h.fetcher.Document(r.Context(), req.PRDURL)
		if err != nil {
			h.log.Warnf("request %s: %v", reqID, err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
	if prd == "" {
		http.Error(w, "prd or prdUrl is required", http.StatusBadRequest)
		return
	}

	source, err := h.resolveSource(req.AIConfig)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	candidates, err := source.ExtractTasks(r.Context(), prd, req.Role)
	if err != nil {
		h.log.Errorf("request %s: extract: %v", reqID, err)
		http.Error(w, "task extraction failed", http.StatusBadGateway)
		return
	}
	filtered := extract.FilterByRole(candidates, req.Role)

	started := time.Now()
	result, err := schedule.Plan(schedule.Request{
		Tasks:              filtered,
		Role:               req.Role,
		Deadline:           deadline,
		Blackouts:          req.BlackoutSlots,
		WorkingHoursPerDay: req.WorkingHoursPerDay,
		MaxHoursPerDay:     req.MaxHoursPerDay,
	}, h.planner)
	if err != nil {
		h.log.Errorf("request %s: plan: %v", reqID, err)
		_ = h.sink.RecordPlan(coremetrics.PlanEvent{
			RequestID: reqID, Role: string(req.Role), Failed: true,
			Elapsed: time.Since(started), Time: time.Now(),
		})
		status := http.StatusInternalServerError
		if errors.Is(err, schedule.ErrCalendarExhausted) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	_ = h.sink.RecordPlan(coremetrics.PlanEvent{
		RequestID:      reqID,
		Role:           string(req.Role),
		TaskCount:      len(result.Tasks),
		TotalHours:     result.TotalEstimatedHours,
		AvailableHours: result.AvailableHours,
		Feasible:       result.IsFeasible,
		Elapsed:        time.Since(started),
		Time:           time.Now(),
	})
	h.log.Infof("request %s: planned %d tasks, feasible=%t", reqID, len(result.Tasks), result.IsFeasible)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) testAI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var cfg ai.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	source, err := h.resolveSource(&cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	verifier, ok := source.(interface{ Verify(context.Context) error })
	if !ok {
		http.Error(w, "source does not support verification", http.StatusNotImplemented)
		return
	}
	if err := verifier.Verify(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (h *Handler) resolveSource(cfg *ai.Config) (extract.TaskSource, error) {
	if cfg != nil && h.factory != nil {
		return h.factory(*cfg)
	}
	if h.source == nil {
		return nil, errors.New("no AI configuration available")
	}
	return h.source, nil
}

// parseDeadline accepts an RFC 3339 date-time or a bare date.
func parseDeadline(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("deadline is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q", s)
}
