package handlers

import (
	"encoding/json"
	"net/http"

	"wingtrack/internal/models"
	"wingtrack/internal/service"
)

// FavoritesHandler handles pinned-item HTTP requests
type FavoritesHandler struct {
	favorites *service.FavoritesService
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(favorites *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// ListFavorites returns the pinned items
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List()
	if err != nil {
		respondWithServiceError(w, err, "Error loading favorites")
		return
	}
	respondWithJSON(w, http.StatusOK, favorites)
}

// AddFavorite pins an item
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var fav models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.favorites.Add(fav); err != nil {
		respondWithServiceError(w, err, "Error adding favorite")
		return
	}
	respondWithJSON(w, http.StatusCreated, fav)
}

// RemoveFavorite unpins an item
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.favorites.Remove(r.PathValue("id")); err != nil {
		respondWithServiceError(w, err, "Error removing favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
