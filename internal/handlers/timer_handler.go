package handlers

import (
	"encoding/json"
	"net/http"

	"wingtrack/internal/service"
)

// TimerHandler handles countdown and plan-session HTTP requests
type TimerHandler struct {
	timers *service.TimerService
}

// NewTimerHandler creates a new timer handler
func NewTimerHandler(timers *service.TimerService) *TimerHandler {
	return &TimerHandler{timers: timers}
}

// ListTimers returns the live countdowns
func (h *TimerHandler) ListTimers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.timers.Active())
}

// StartTimer begins a countdown for an exercise. An optional duration
// in the body overrides the catalog default.
func (h *TimerHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	exerciseID := r.PathValue("id")

	var req struct {
		Duration int `json:"duration"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
			return
		}
	}

	if err := h.timers.Start(exerciseID, req.Duration); err != nil {
		respondWithServiceError(w, err, "Error starting timer")
		return
	}
	respondWithJSON(w, http.StatusOK, h.timers.Active())
}

// StopTimer cancels a countdown, paying out prorated XP
func (h *TimerHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	exerciseID := r.PathValue("id")
	if err := h.timers.Stop(exerciseID, true); err != nil {
		respondWithServiceError(w, err, "Error stopping timer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartPlan begins a recommended or custom plan session
func (h *TimerHandler) StartPlan(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("id")
	if err := h.timers.StartPlan(planID); err != nil {
		respondWithServiceError(w, err, "Error starting plan")
		return
	}

	status, _ := h.timers.ActivePlan()
	respondWithJSON(w, http.StatusOK, status)
}

// StopPlan cancels the running plan session
func (h *TimerHandler) StopPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.timers.StopPlan(); err != nil {
		respondWithServiceError(w, err, "Error stopping plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActivePlan returns the running plan session, if any
func (h *TimerHandler) ActivePlan(w http.ResponseWriter, r *http.Request) {
	status, ok := h.timers.ActivePlan()
	if !ok {
		respondWithError(w, http.StatusNotFound, "No plan is running", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}
