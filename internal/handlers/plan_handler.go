package handlers

import (
	"encoding/json"
	"net/http"

	"wingtrack/internal/models"
	"wingtrack/internal/service"
)

// PlanHandler handles custom-plan HTTP requests
type PlanHandler struct {
	profiles *service.ProfileService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(profiles *service.ProfileService) *PlanHandler {
	return &PlanHandler{profiles: profiles}
}

// ListPlans returns the profile's custom plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profiles.Snapshot()
	if !ok {
		respondWithError(w, http.StatusNotFound, "No profile exists", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, profile.CustomPlans)
}

// CreatePlan saves a new custom plan on the profile
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string            `json:"name"`
		Exercises []models.PlanStep `json:"exercises"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	plan, err := h.profiles.CreatePlan(req.Name, req.Exercises)
	if err != nil {
		respondWithServiceError(w, err, "Error creating plan")
		return
	}
	respondWithJSON(w, http.StatusCreated, plan)
}

// DeletePlan removes a custom plan. Deleting an unknown id is a no-op.
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.profiles.DeletePlan(id); err != nil {
		respondWithServiceError(w, err, "Error deleting plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
