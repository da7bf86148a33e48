package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"wingtrack/internal/database"
	"wingtrack/internal/models"
)

const profileKey = "profile"

// ProfileRepository persists the single profile record as one JSON
// document in the documents table
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Load reads the persisted profile. It returns (nil, nil) when no profile
// exists. A document that fails to parse is discarded and likewise
// reported as absent; corruption never propagates to the caller.
func (r *ProfileRepository) Load() (*models.Profile, error) {
	raw, err := getDocument(r.db, profileKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	profile, err := models.DecodeProfile(raw)
	if err != nil {
		log.Printf("Discarding corrupted profile document: %v", err)
		if delErr := deleteDocument(r.db, profileKey); delErr != nil {
			return nil, fmt.Errorf("failed to discard corrupted profile: %w", delErr)
		}
		return nil, nil
	}
	return profile, nil
}

// Save serializes and persists the full profile snapshot
func (r *ProfileRepository) Save(profile *models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	return putDocument(r.db, profileKey, data)
}

// Delete removes the persisted profile document
func (r *ProfileRepository) Delete() error {
	return deleteDocument(r.db, profileKey)
}

// LoadRaw returns the stored document bytes without decoding, for backups
func (r *ProfileRepository) LoadRaw() ([]byte, error) {
	return getDocument(r.db, profileKey)
}

func getDocument(db *database.DB, key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM documents WHERE doc_key = ?`
	err := db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return []byte(value), nil
}

func putDocument(db *database.DB, key string, value []byte) error {
	if _, err := db.Exec(db.Dialect.UpsertDocument(), key, string(value)); err != nil {
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return nil
}

func deleteDocument(db *database.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM documents WHERE doc_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}
