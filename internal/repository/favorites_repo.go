package repository

import (
	"encoding/json"
	"fmt"
	"log"

	"wingtrack/internal/database"
	"wingtrack/internal/models"
)

const favoritesKey = "favorites"

// FavoritesRepository persists the favorited reference-content list as a
// sibling document, independent from the profile
type FavoritesRepository struct {
	db *database.DB
}

// NewFavoritesRepository creates a new favorites repository
func NewFavoritesRepository(db *database.DB) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

// Load reads the favorites list; absent or corrupt documents yield an
// empty list
func (r *FavoritesRepository) Load() ([]models.Favorite, error) {
	raw, err := getDocument(r.db, favoritesKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Favorite{}, nil
	}

	var favorites []models.Favorite
	if err := json.Unmarshal(raw, &favorites); err != nil {
		log.Printf("Discarding corrupted favorites document: %v", err)
		if delErr := deleteDocument(r.db, favoritesKey); delErr != nil {
			return nil, fmt.Errorf("failed to discard corrupted favorites: %w", delErr)
		}
		return []models.Favorite{}, nil
	}
	return favorites, nil
}

// Save persists the full favorites list
func (r *FavoritesRepository) Save(favorites []models.Favorite) error {
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}
	return putDocument(r.db, favoritesKey, data)
}

// LoadRaw returns the stored document bytes without decoding, for backups
func (r *FavoritesRepository) LoadRaw() ([]byte, error) {
	return getDocument(r.db, favoritesKey)
}

// SaveRaw stores document bytes after checking they decode as a
// favorites list, for restores
func (r *FavoritesRepository) SaveRaw(raw []byte) error {
	var favorites []models.Favorite
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return fmt.Errorf("invalid favorites document: %w", err)
	}
	return putDocument(r.db, favoritesKey, raw)
}
