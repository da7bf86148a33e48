package handlers

import (
	"net/http"

	"wingtrack/internal/catalog"
	"wingtrack/internal/models"
	"wingtrack/internal/service"
)

// CatalogHandler serves the static training catalog, scoped to the
// active profile's unlocks where that matters
type CatalogHandler struct {
	catalog  *catalog.Catalog
	profiles *service.ProfileService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog, profiles *service.ProfileService) *CatalogHandler {
	return &CatalogHandler{catalog: cat, profiles: profiles}
}

// ListItems returns the training items unlocked at the profile's belt
// level, or the full catalog when no profile exists
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	level := -1
	_ = h.profiles.View(func(p *models.Profile) error {
		level = p.UnlockedBeltLevel
		return nil
	})

	if level < 0 {
		respondWithJSON(w, http.StatusOK, h.catalog.Items())
		return
	}
	respondWithJSON(w, http.StatusOK, h.catalog.UnlockedItems(level))
}

// ListBelts returns the belt ladder
func (h *CatalogHandler) ListBelts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Belts())
}

// ListAchievements returns the achievement definitions
func (h *CatalogHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Achievements())
}

// ListPlans returns the recommended plans
func (h *CatalogHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Plans())
}

// ListThemes returns the available colour themes
func (h *CatalogHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Themes())
}

// ListAvatars returns the available avatars
func (h *CatalogHandler) ListAvatars(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Avatars())
}
