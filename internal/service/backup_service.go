package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"wingtrack/internal/repository"
)

// BackupData represents a complete export of the training data
type BackupData struct {
	Version      string          `json:"version"`
	ID           string          `json:"id"`
	ExportedAt   time.Time       `json:"exported_at"`
	DatabaseType string          `json:"database_type"`
	Profile      json.RawMessage `json:"profile,omitempty"`
	Favorites    json.RawMessage `json:"favorites,omitempty"`
}

// BackupService handles full export and restore of the document store
type BackupService struct {
	profiles      *ProfileService
	profileRepo   *repository.ProfileRepository
	favoritesRepo *repository.FavoritesRepository
	databaseType  string
}

// NewBackupService creates a new backup service
func NewBackupService(profiles *ProfileService, profileRepo *repository.ProfileRepository, favoritesRepo *repository.FavoritesRepository, databaseType string) *BackupService {
	return &BackupService{
		profiles:      profiles,
		profileRepo:   profileRepo,
		favoritesRepo: favoritesRepo,
		databaseType:  databaseType,
	}
}

// Export builds a backup of every stored document
func (s *BackupService) Export() (*BackupData, error) {
	backup := &BackupData{
		Version:      "1.0",
		ID:           uuid.New().String(),
		ExportedAt:   time.Now(),
		DatabaseType: s.databaseType,
	}

	profileRaw, err := s.profileRepo.LoadRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to export profile: %w", err)
	}
	if profileRaw == nil {
		return nil, fmt.Errorf("nothing to back up: %w", ErrNoProfile)
	}
	backup.Profile = profileRaw

	favoritesRaw, err := s.favoritesRepo.LoadRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to export favorites: %w", err)
	}
	backup.Favorites = favoritesRaw

	return backup, nil
}

// ExportToWriter streams a backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup, err := s.Export()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// ExportToFile writes a backup to the given path. An empty path picks a
// timestamped default name in the working directory.
func (s *BackupService) ExportToFile(outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return "", err
	}

	log.Printf("Backup exported successfully to %s", outputPath)
	return outputPath, nil
}

// ImportFromReader restores documents from a backup stream. The profile
// goes through the same validation as a regular import; the current data
// is replaced.
func (s *BackupService) ImportFromReader(r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if len(backup.Profile) == 0 {
		return fmt.Errorf("backup contains no profile")
	}

	if err := s.profiles.Import(backup.Profile); err != nil {
		return fmt.Errorf("failed to restore profile: %w", err)
	}

	if len(backup.Favorites) > 0 {
		if err := s.favoritesRepo.SaveRaw(backup.Favorites); err != nil {
			return fmt.Errorf("failed to restore favorites: %w", err)
		}
	}

	log.Printf("Backup restored (exported %s from %s database)",
		backup.ExportedAt.Format(time.RFC3339), backup.DatabaseType)
	return nil
}

// ImportFromFile restores documents from a backup file
func (s *BackupService) ImportFromFile(inputPath string) error {
	log.Printf("Starting import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}
