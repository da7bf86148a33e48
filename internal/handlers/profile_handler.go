package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"wingtrack/internal/service"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profiles    *service.ProfileService
	progression *service.ProgressionService
	stamina     *service.StaminaService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *service.ProfileService, progression *service.ProgressionService, stamina *service.StaminaService) *ProfileHandler {
	return &ProfileHandler{
		profiles:    profiles,
		progression: progression,
		stamina:     stamina,
	}
}

// GetProfile returns the active profile. Fetching the profile is the
// app's load path, so it also rotates the daily challenge, catches up
// stamina regeneration and consumes the one-shot onboarding flag.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if !h.profiles.Active() {
		respondWithError(w, http.StatusNotFound, "No profile exists", "", nil)
		return
	}

	h.stamina.Sync()
	if err := h.progression.CheckDailyChallenge(); err != nil {
		log.Printf("Error rotating daily challenge: %v", err)
	}

	isNew, err := h.profiles.ConsumeOnboarding()
	if err != nil {
		respondWithServiceError(w, err, "Error consuming onboarding flag")
		return
	}

	profile, ok := h.profiles.Snapshot()
	if !ok {
		respondWithError(w, http.StatusNotFound, "No profile exists", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profile":    profile,
		"onboarding": isNew,
	})
}

// SaveProfile creates the profile or updates its identity fields
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var form service.ProfileForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.profiles.SaveForm(form); err != nil {
		respondWithServiceError(w, err, "Error saving profile")
		return
	}

	profile, _ := h.profiles.Snapshot()
	respondWithJSON(w, http.StatusOK, profile)
}

// DeleteProfile erases the stored profile
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Delete(); err != nil {
		respondWithServiceError(w, err, "Error deleting profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportProfile downloads the profile as a JSON document
func (h *ProfileHandler) ExportProfile(w http.ResponseWriter, r *http.Request) {
	data, err := h.profiles.Export()
	if err != nil {
		respondWithServiceError(w, err, "Error exporting profile")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="profile.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing profile export: %v", err)
	}
}

// ImportProfile replaces the profile with an uploaded JSON document
func (h *ProfileHandler) ImportProfile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read request body", "", nil)
		return
	}

	if err := h.profiles.Import(data); err != nil {
		respondWithServiceError(w, err, "Error importing profile")
		return
	}

	profile, _ := h.profiles.Snapshot()
	respondWithJSON(w, http.StatusOK, profile)
}

// SetTheme switches the profile's colour theme
func (h *ProfileHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.progression.SetTheme(req.Theme); err != nil {
		respondWithServiceError(w, err, "Error setting theme")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VisitSection clears the new-content badge for a section. Visiting a
// section with no badge set is a no-op.
func (h *ProfileHandler) VisitSection(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("id")
	if err := h.progression.VisitSection(section); err != nil {
		respondWithServiceError(w, err, "Error visiting section")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStats returns the aggregated statistics summary
func (h *ProfileHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progression.Stats()
	if err != nil {
		respondWithServiceError(w, err, "Error building stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
