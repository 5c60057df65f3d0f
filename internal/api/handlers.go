package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hyperengineering/lifegrid/internal/period"
	"github.com/hyperengineering/lifegrid/internal/planner"
	"github.com/hyperengineering/lifegrid/internal/types"
	"github.com/hyperengineering/lifegrid/internal/validation"
)

// Handler implements the API handlers
type Handler struct {
	svc     *planner.Service
	apiKey  string
	version string
}

// NewHandler creates a new Handler wrapping the planner service.
func NewHandler(svc *planner.Service, apiKey, version string) *Handler {
	return &Handler{
		svc:     svc,
		apiKey:  apiKey,
		version: version,
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CountPeriods(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, types.HealthResponse{
		Status:      "healthy",
		Version:     h.version,
		PeriodCount: count,
	})
}

// GetPeriod handles GET /api/v1/periods/{periodID}
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	p, err := h.svc.GetPeriod(r.Context(), id)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, p)
}

// CurrentPeriod handles GET /api/v1/periods/current?level=&base_year=
func (h *Handler) CurrentPeriod(w http.ResponseWriter, r *http.Request) {
	level := types.Level(r.URL.Query().Get("level"))
	if level == "" {
		level = types.LevelDay
	}
	if !level.Valid() {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Unknown level %q", level))
		return
	}

	baseYear, ok := queryInt(r, "base_year")
	if !ok {
		WriteProblem(w, r, http.StatusBadRequest, "base_year must be an integer")
		return
	}

	id, p, err := h.svc.GetCurrentPeriod(r.Context(), level, baseYear)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.CurrentPeriodResponse{PeriodID: id, Period: p})
}

// UpdateHeader handles PUT /api/v1/periods/{periodID}/header
func (h *Handler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	var req types.UpdateHeaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if err := h.svc.UpdateHeader(r.Context(), id, req); err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.SuccessResponse{Success: true})
}

// ChildPeriods handles GET /api/v1/periods/{periodID}/children?base_year=
func (h *Handler) ChildPeriods(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	baseYear, ok := queryInt(r, "base_year")
	if !ok {
		WriteProblem(w, r, http.StatusBadRequest, "base_year must be an integer")
		return
	}

	children, err := h.svc.GetChildPeriods(r.Context(), id, baseYear)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.ChildPeriodsResponse{PeriodID: id, Children: children})
}

// PeriodSummary handles GET /api/v1/periods/{periodID}/summary
func (h *Handler) PeriodSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	summary, err := h.svc.GetPeriodSummary(r.Context(), id)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// AddItem handles POST /api/v1/periods/{periodID}/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")

	var req types.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateAddItemRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	itemID, err := h.svc.AddItem(r.Context(), id, req)
	if err != nil {
		slog.Error("add item failed", "error", err, "period_id", id)
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.AddItemResponse{Success: true, ItemID: itemID})
}

// UpdateItem handles PATCH /api/v1/periods/{periodID}/items/{itemID}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	itemID := chi.URLParam(r, "itemID")

	var req types.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if req.Content != nil {
		c := validation.Collector{}
		c.Add(validation.ValidateRequired("content", *req.Content))
		c.Add(validation.ValidateUTF8("content", *req.Content))
		c.Add(validation.ValidateMaxLength("content", *req.Content, validation.MaxContentLength))
		if c.HasErrors() {
			WriteProblemWithErrors(w, r, "Request contains invalid fields", c.Errors())
			return
		}
	}

	if err := h.svc.UpdateItem(r.Context(), periodID, itemID, req); err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.SuccessResponse{Success: true})
}

// DeleteItem handles DELETE /api/v1/periods/{periodID}/items/{itemID}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	itemID := chi.URLParam(r, "itemID")

	count, err := h.svc.DeleteItem(r.Context(), periodID, itemID)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.DeleteItemResponse{Success: true, DeletedCount: count})
}

// ToggleItem handles POST /api/v1/periods/{periodID}/items/{itemID}/toggle
func (h *Handler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	itemID := chi.URLParam(r, "itemID")

	completed, err := h.svc.ToggleComplete(r.Context(), periodID, itemID)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.ToggleResponse{Success: true, Completed: completed})
}

// AssignItem handles POST /api/v1/periods/{periodID}/items/{itemID}/assign.
// Exactly one of target_period_id or time_slot must be set.
func (h *Handler) AssignItem(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	itemID := chi.URLParam(r, "itemID")

	var req types.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}
	if (req.TargetPeriodID == "") == (req.TimeSlot == "") {
		WriteProblem(w, r, http.StatusBadRequest, "Exactly one of target_period_id or time_slot is required")
		return
	}

	var copyID string
	var err error
	if req.TargetPeriodID != "" {
		copyID, err = h.svc.AssignToSlot(r.Context(), periodID, itemID, req.TargetPeriodID, req.SubContent)
	} else {
		copyID, err = h.svc.AssignToTimeSlot(r.Context(), periodID, itemID, req.TimeSlot, req.SubContent)
	}
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.AssignResponse{Success: true, ItemID: copyID})
}

// GetRecord handles GET /api/v1/periods/{periodID}/record
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")
	if period.LevelOf(id) != types.LevelDay {
		WriteProblem(w, r, http.StatusBadRequest, "Records exist only on day periods")
		return
	}

	rec, err := h.svc.GetRecord(r.Context(), id)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// UpdateRecord handles PUT /api/v1/periods/{periodID}/record
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodID")
	if period.LevelOf(id) != types.LevelDay {
		WriteProblem(w, r, http.StatusBadRequest, "Records exist only on day periods")
		return
	}

	var req types.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateUpdateRecordRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	rec, err := h.svc.UpdateRecord(r.Context(), id, req)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// Search handles GET /api/v1/search?q=&level=&completed=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	filter := planner.SearchFilter{}
	if lv := r.URL.Query().Get("level"); lv != "" {
		level := types.Level(lv)
		if !level.Valid() {
			WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Unknown level %q", lv))
			return
		}
		filter.Level = level
	}
	if c := r.URL.Query().Get("completed"); c != "" {
		completed, err := strconv.ParseBool(c)
		if err != nil {
			WriteProblem(w, r, http.StatusBadRequest, "completed must be a boolean")
			return
		}
		filter.Completed = &completed
	}

	matches, err := h.svc.SearchItems(r.Context(), q, filter)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	if matches == nil {
		matches = []types.SearchMatch{}
	}
	writeJSON(w, types.SearchResponse{Matches: matches})
}

// ListEvents handles GET /api/v1/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []types.AnnualEvent{}
	}
	writeJSON(w, types.EventsResponse{Events: events})
}

// AddEvent handles POST /api/v1/events
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	var req types.AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return
	}

	if errs := validation.ValidateAddEventRequest(req); len(errs) > 0 {
		WriteProblemWithErrors(w, r, "Request contains invalid fields", errs)
		return
	}

	event, err := h.svc.AddEvent(r.Context(), req)
	if err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.AddEventResponse{Success: true, EventID: event.ID})
}

// DeleteEvent handles DELETE /api/v1/events/{eventID}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventID")

	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		MapServiceError(w, r, err)
		return
	}
	writeJSON(w, types.SuccessResponse{Success: true})
}

// queryInt parses an optional integer query parameter. Absent reads as 0.
func queryInt(r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
