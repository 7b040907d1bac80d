// Package api exposes the allocation engine and the saved-plan store
// over REST. Handlers translate HTTP to domain calls; all plan
// validation goes through the same parser as the CLI so both surfaces
// accept identical inputs.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/cache"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/output"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/store"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  store.Store
	Cache  cache.Cache
	Engine *calculation.Engine

	parser *config.InputParser
}

// NewHandler creates a handler backed by the given store and cache.
func NewHandler(st store.Store, c cache.Cache) *Handler {
	return &Handler{
		Store:  st,
		Cache:  c,
		Engine: calculation.NewEngine(),
		parser: config.NewInputParser(),
	}
}

// Health reports service liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetRules returns the default statutory rule constants, so clients
// can render assumptions and build override payloads.
// GET /api/rules
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.DefaultRules())
}

// ComputePlan runs the allocation engine on the posted household plan.
// POST /api/plans/compute
func (h *Handler) ComputePlan(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	file := config.PlanFile{Plan: req.Plan, Rules: req.Rules}
	if err := h.parser.ValidateAndClamp(&file.Plan); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan", err)
		return
	}

	h.compute(w, r, &file)
}

// ComputeSavedPlan recomputes a stored plan with the rules frozen at
// save time.
// POST /api/plans/{id}/compute
func (h *Handler) ComputeSavedPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load plan", err)
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	var file config.PlanFile
	if err := json.Unmarshal([]byte(plan.SpecJSON), &file.Plan); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode stored plan", err)
		return
	}
	var rules domain.BenefitRules
	if err := json.Unmarshal([]byte(plan.RulesJSON), &rules); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode stored rules", err)
		return
	}
	file.Rules = &rules

	h.compute(w, r, &file)
}

// compute serves a plan report for an already-validated plan file,
// consulting the result cache first. Cache write failures are ignored;
// the cache is an accelerator, not a dependency.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request, file *config.PlanFile) {
	ctx := r.Context()

	key, keyErr := cache.Key("compute", file)
	if keyErr == nil {
		if cached, ok := h.Cache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	rules := file.EffectiveRules()
	results, err := h.Engine.BuildPlan(ctx, &file.Plan, rules)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Plan cannot be computed", err)
		return
	}

	body, err := json.Marshal(output.NewPlanReport(&file.Plan, rules, results))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode results", err)
		return
	}
	if keyErr == nil {
		h.Cache.Set(ctx, key, string(body))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ListPlans returns summaries of all saved plans, most recently
// updated first.
// GET /api/plans
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Store.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanSummaryDTO, len(plans))
	for i, p := range plans {
		dtos[i] = PlanSummaryDTO{
			ID:        p.ID,
			Name:      p.Name,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
			UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePlan validates and stores a new plan under a fresh ID.
// POST /api/plans
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Plan name is required", nil)
		return
	}

	saved, err := h.toSavedPlan(uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan", err)
		return
	}
	if err := h.Store.SavePlan(r.Context(), saved); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}

	h.respondWithPlan(w, r, saved.ID, http.StatusCreated)
}

// GetPlan returns one saved plan.
// GET /api/plans/{id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	dto, err := toPlanDTO(*plan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode stored plan", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// UpdatePlan replaces a saved plan's payload. The row keeps its ID and
// creation time; an omitted name keeps the old one.
// PUT /api/plans/{id}
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	var req SavePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		req.Name = existing.Name
	}

	saved, err := h.toSavedPlan(id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan", err)
		return
	}
	if err := h.Store.SavePlan(r.Context(), saved); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}

	h.respondWithPlan(w, r, id, http.StatusOK)
}

// DeletePlan removes a saved plan.
// DELETE /api/plans/{id}
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeletePlan(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toSavedPlan validates the request and freezes it into a storable
// row: the clamped spec plus the effective rules at save time.
func (h *Handler) toSavedPlan(id string, req SavePlanRequest) (store.SavedPlan, error) {
	file := config.PlanFile{Plan: req.Plan, Rules: req.Rules}
	if err := h.parser.ValidateAndClamp(&file.Plan); err != nil {
		return store.SavedPlan{}, err
	}

	specJSON, err := json.Marshal(file.Plan)
	if err != nil {
		return store.SavedPlan{}, err
	}
	rulesJSON, err := json.Marshal(file.EffectiveRules())
	if err != nil {
		return store.SavedPlan{}, err
	}

	return store.SavedPlan{
		ID:        id,
		Name:      req.Name,
		SpecJSON:  string(specJSON),
		RulesJSON: string(rulesJSON),
	}, nil
}

// respondWithPlan re-reads the row so the response carries the
// store's timestamps.
func (h *Handler) respondWithPlan(w http.ResponseWriter, r *http.Request, id string, status int) {
	plan, err := h.Store.GetPlan(r.Context(), id)
	if err != nil || plan == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload saved plan", err)
		return
	}
	dto, err := toPlanDTO(*plan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to decode stored plan", err)
		return
	}
	writeJSON(w, status, dto)
}

func toPlanDTO(p store.SavedPlan) (PlanDTO, error) {
	dto := PlanDTO{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if err := json.Unmarshal([]byte(p.SpecJSON), &dto.Plan); err != nil {
		return dto, err
	}
	if err := json.Unmarshal([]byte(p.RulesJSON), &dto.Rules); err != nil {
		return dto, err
	}
	return dto, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
