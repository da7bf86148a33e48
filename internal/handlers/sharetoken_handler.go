package handlers

import (
	"encoding/json"
	"net/http"

	"wingtrack/internal/service"
)

// ShareTokenHandler handles progress share-token HTTP requests
type ShareTokenHandler struct {
	tokens *service.ShareTokenService
}

// NewShareTokenHandler creates a new share token handler
func NewShareTokenHandler(tokens *service.ShareTokenService) *ShareTokenHandler {
	return &ShareTokenHandler{tokens: tokens}
}

// IssueToken signs a progress snapshot of the active profile
func (h *ShareTokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokens.Issue()
	if err != nil {
		respondWithServiceError(w, err, "Error issuing share token")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// VerifyToken parses a share token and returns the snapshot it carries
func (h *ShareTokenHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	claims, err := h.tokens.Verify(req.Token)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid share token", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"studentId": claims.Subject,
		"name":      claims.Name,
		"xp":        claims.XP,
		"beltLevel": claims.BeltLevel,
		"issuedAt":  claims.IssuedAt,
		"expiresAt": claims.ExpiresAt,
	})
}
