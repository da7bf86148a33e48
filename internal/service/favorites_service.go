package service

import (
	"wingtrack/internal/models"
	"wingtrack/internal/validation"
)

// FavoritesStore persists the pinned-items list
type FavoritesStore interface {
	Load() ([]models.Favorite, error)
	Save([]models.Favorite) error
}

// FavoritesService manages the list of items pinned to the dashboard
type FavoritesService struct {
	store FavoritesStore
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(store FavoritesStore) *FavoritesService {
	return &FavoritesService{store: store}
}

// List returns the pinned items in saved order
func (s *FavoritesService) List() ([]models.Favorite, error) {
	return s.store.Load()
}

// Add pins an item. Adding an id that is already pinned is a no-op.
func (s *FavoritesService) Add(fav models.Favorite) error {
	if fav.ID == "" {
		return validation.ValidationError{Field: "id", Message: "favorite id is required"}
	}
	if fav.Title == "" {
		return validation.ValidationError{Field: "title", Message: "favorite title is required"}
	}

	favorites, err := s.store.Load()
	if err != nil {
		return err
	}
	for _, existing := range favorites {
		if existing.ID == fav.ID {
			return nil
		}
	}
	return s.store.Save(append(favorites, fav))
}

// Remove unpins an item by id. Removing an id that is not pinned is a
// no-op.
func (s *FavoritesService) Remove(id string) error {
	favorites, err := s.store.Load()
	if err != nil {
		return err
	}

	kept := favorites[:0]
	for _, fav := range favorites {
		if fav.ID != id {
			kept = append(kept, fav)
		}
	}
	if len(kept) == len(favorites) {
		return nil
	}
	return s.store.Save(kept)
}
