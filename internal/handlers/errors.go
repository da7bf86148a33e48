package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wingtrack/internal/service"
	"wingtrack/internal/validation"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// respondWithServiceError maps domain errors onto HTTP statuses:
// validation failures are the caller's fault, missing-profile means the
// resource does not exist, and insufficient stamina is a state conflict.
// Everything else is a server error with a generic message.
func respondWithServiceError(w http.ResponseWriter, err error, logMsg string) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, service.ErrNoProfile):
		respondWithError(w, http.StatusNotFound, "No profile exists", "", nil)
	case errors.Is(err, service.ErrInsufficientStamina):
		respondWithError(w, http.StatusConflict, "Not enough stamina", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logMsg, err)
	}
}
