package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wingtrack/internal/service"
)

// PromotionHandler handles belt promotion HTTP requests
type PromotionHandler struct {
	promotions *service.PromotionService
	profiles   *service.ProfileService
	secret     string
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotions *service.PromotionService, profiles *service.ProfileService, secret string) *PromotionHandler {
	return &PromotionHandler{promotions: promotions, profiles: profiles, secret: secret}
}

// VerifyCode checks a submitted promotion code and applies the belt
// promotion on a match
func (h *PromotionHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BeltLevel int    `json:"beltLevel"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.promotions.Verify(req.BeltLevel, req.Code); err != nil {
		respondWithServiceError(w, err, "Error verifying promotion code")
		return
	}

	profile, _ := h.profiles.Snapshot()
	respondWithJSON(w, http.StatusOK, profile)
}

// GetCode derives the promotion code for a belt level. The caller must
// present the promotion secret; this keeps students from promoting
// themselves, it is not a security boundary.
func (h *PromotionHandler) GetCode(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Promotion-Secret") != h.secret {
		respondWithError(w, http.StatusForbidden, "Instructor secret required", "", nil)
		return
	}

	level, err := strconv.Atoi(r.URL.Query().Get("beltLevel"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid belt level", "", nil)
		return
	}

	code, err := h.promotions.CodeForActive(level)
	if err != nil {
		respondWithServiceError(w, err, "Error deriving promotion code")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"beltLevel": level,
		"code":      code,
	})
}
