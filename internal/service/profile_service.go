package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"wingtrack/internal/catalog"
	"wingtrack/internal/models"
	"wingtrack/internal/validation"
)

// ProfileStore abstracts profile persistence
type ProfileStore interface {
	Load() (*models.Profile, error)
	Save(*models.Profile) error
	Delete() error
}

// ProfileService owns the single authoritative profile record. All
// engines mutate it through Update, which holds the service lock for the
// whole mutate-then-persist step so no caller ever observes a
// half-applied state.
type ProfileService struct {
	mu      sync.Mutex
	store   ProfileStore
	catalog *catalog.Catalog
	profile *models.Profile
	now     func() time.Time
}

// ProfileForm carries the identity fields a student edits directly
type ProfileForm struct {
	Name     string  `json:"name"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
	Avatar   string  `json:"avatar"`
}

// NewProfileService creates a new profile service
func NewProfileService(store ProfileStore, cat *catalog.Catalog) *ProfileService {
	return &ProfileService{store: store, catalog: cat, now: time.Now}
}

// LoadFromStore reads the persisted snapshot at startup. A missing or
// corrupt document simply leaves the service without an active profile.
func (s *ProfileService) LoadFromStore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.store.Load()
	if err != nil {
		return err
	}
	if profile != nil {
		s.repair(profile)
	}
	s.profile = profile
	return nil
}

// Active reports whether a profile exists
func (s *ProfileService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil
}

// Snapshot returns a deep copy of the current profile for readers
func (s *ProfileService) Snapshot() (*models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, false
	}
	return s.profile.Clone(), true
}

// ConsumeOnboarding reports whether the profile was just created and
// clears the flag, persisting the change. The onboarding tour is shown at
// most once.
func (s *ProfileService) ConsumeOnboarding() (bool, error) {
	onboarding := false
	err := s.Update(func(p *models.Profile) error {
		if !p.IsNew {
			return ErrNoChange
		}
		p.IsNew = false
		onboarding = true
		return nil
	})
	if errors.Is(err, ErrNoProfile) {
		return false, nil
	}
	return onboarding, err
}

// View runs fn against the profile under the lock without persisting
func (s *ProfileService) View(fn func(p *models.Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return ErrNoProfile
	}
	return fn(s.profile)
}

// Update runs fn against the profile under the lock and persists the full
// snapshot when fn succeeds. fn returning ErrNoChange skips persistence.
// fn must validate before mutating: an error after a partial mutation
// would leave the in-memory record inconsistent with storage.
func (s *ProfileService) Update(fn func(p *models.Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(fn)
}

func (s *ProfileService) updateLocked(fn func(p *models.Profile) error) error {
	if s.profile == nil {
		return ErrNoProfile
	}
	if err := fn(s.profile); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return s.store.Save(s.profile)
}

// SaveForm creates the profile on first save or updates the identity
// fields of an existing one. Progression state is never touched by edits.
func (s *ProfileService) SaveForm(form ProfileForm) error {
	if err := validation.ValidateName(form.Name); err != nil {
		return err
	}
	if err := validation.ValidateHeight(form.HeightCm); err != nil {
		return err
	}
	if err := validation.ValidateWeight(form.WeightKg); err != nil {
		return err
	}

	avatar := form.Avatar
	if avatar == "" {
		avatar = s.catalog.Avatars()[0].ID
	}
	bmi := roundTo1(form.WeightKg / math.Pow(form.HeightCm/100, 2))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		createdAt := s.now()
		s.profile = &models.Profile{
			Name:              form.Name,
			HeightCm:          form.HeightCm,
			WeightKg:          form.WeightKg,
			BMI:               bmi,
			Avatar:            avatar,
			XP:                0,
			UnlockedBeltLevel: 0,
			Achievements:      []string{},
			History:           []models.HistoryEntry{},
			TrainingStats:     map[string]*models.TrainingStat{},
			CustomPlans:       []models.CustomPlan{},
			CreatedAt:         createdAt,
			StudentID:         models.StudentIDFor(createdAt),
			IsNew:             true,
			Theme:             "default",
			Stamina:           models.DefaultMaxStamina,
			MaxStamina:        models.DefaultMaxStamina,
			LastStaminaUpdate: createdAt,
		}
	} else {
		s.profile.Name = form.Name
		s.profile.HeightCm = form.HeightCm
		s.profile.WeightKg = form.WeightKg
		s.profile.BMI = bmi
		s.profile.Avatar = avatar
	}

	return s.store.Save(s.profile)
}

// Import replaces the current profile with an externally supplied
// document. The document must carry a numeric xp field and a non-empty
// name; anything else is rejected without touching the current profile.
func (s *ProfileService) Import(data []byte) error {
	if err := validateImport(data); err != nil {
		return err
	}

	profile, err := models.DecodeProfile(data)
	if err != nil {
		return validation.ValidationError{Field: "file", Message: "invalid profile file"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.repair(profile)
	if err := s.store.Save(profile); err != nil {
		return err
	}
	s.profile = profile
	return nil
}

func validateImport(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return validation.ValidationError{Field: "file", Message: "invalid profile file"}
	}

	xpRaw, ok := probe["xp"]
	if !ok {
		return validation.ValidationError{Field: "xp", Message: "profile file is missing a numeric xp field"}
	}
	var xp float64
	if err := json.Unmarshal(xpRaw, &xp); err != nil {
		return validation.ValidationError{Field: "xp", Message: "profile file is missing a numeric xp field"}
	}

	var name string
	if nameRaw, ok := probe["name"]; ok {
		if err := json.Unmarshal(nameRaw, &name); err != nil {
			return validation.ValidationError{Field: "name", Message: "profile file has no name"}
		}
	}
	if name == "" {
		return validation.ValidationError{Field: "name", Message: "profile file has no name"}
	}
	return nil
}

// Export produces the complete profile document
func (s *ProfileService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, fmt.Errorf("nothing to export: %w", ErrNoProfile)
	}
	return json.MarshalIndent(s.profile, "", "  ")
}

// Delete destroys the profile and its persisted document
func (s *ProfileService) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return ErrNoProfile
	}
	if err := s.store.Delete(); err != nil {
		return err
	}
	s.profile = nil
	return nil
}

// CreatePlan appends a custom training plan. Steps with a non-positive
// duration fall back to the exercise's default.
func (s *ProfileService) CreatePlan(name string, steps []models.PlanStep) (models.CustomPlan, error) {
	if err := validation.ValidateName(name); err != nil {
		return models.CustomPlan{}, validation.ValidationError{Field: "name", Message: "plan name is required"}
	}
	if len(steps) == 0 {
		return models.CustomPlan{}, validation.ValidationError{Field: "exercises", Message: "select at least one exercise"}
	}

	resolved := make([]models.PlanStep, len(steps))
	for i, step := range steps {
		item, ok := s.catalog.Item(step.ExerciseID)
		if !ok {
			return models.CustomPlan{}, validation.ValidationError{Field: "exercises", Message: "unknown exercise: " + step.ExerciseID}
		}
		duration := step.Duration
		if duration <= 0 {
			duration = item.Duration
		}
		resolved[i] = models.PlanStep{ExerciseID: step.ExerciseID, Duration: duration}
	}

	plan := models.CustomPlan{ID: uuid.New().String(), Name: name, Exercises: resolved}
	err := s.Update(func(p *models.Profile) error {
		p.CustomPlans = append(p.CustomPlans, plan)
		return nil
	})
	if err != nil {
		return models.CustomPlan{}, err
	}
	return plan, nil
}

// DeletePlan removes a custom plan by id. Deleting an unknown id is a
// no-op.
func (s *ProfileService) DeletePlan(id string) error {
	return s.Update(func(p *models.Profile) error {
		for i, plan := range p.CustomPlans {
			if plan.ID == id {
				p.CustomPlans = append(p.CustomPlans[:i], p.CustomPlans[i+1:]...)
				return nil
			}
		}
		return ErrNoChange
	})
}

// repair fills in every optional field an older profile version may lack.
// It is idempotent: repairing an already-repaired profile changes nothing.
func (s *ProfileService) repair(p *models.Profile) {
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.History == nil {
		p.History = []models.HistoryEntry{}
	}
	if p.TrainingStats == nil {
		p.TrainingStats = map[string]*models.TrainingStat{}
	}
	if p.CustomPlans == nil {
		p.CustomPlans = []models.CustomPlan{}
	}
	if p.StudentID == "" {
		p.StudentID = models.StudentIDFor(p.CreatedAt)
	}
	if p.Theme == "" {
		p.Theme = "default"
	}
	if p.Avatar == "" {
		p.Avatar = s.catalog.Avatars()[0].ID
	}
	if p.MaxStamina <= 0 {
		p.MaxStamina = models.DefaultMaxStamina
	}
	if p.Stamina < 0 {
		// decode sentinel: the document predates the stamina system
		p.Stamina = models.DefaultMaxStamina
	}
	if p.Stamina > p.MaxStamina {
		p.Stamina = p.MaxStamina
	}
	if p.LastStaminaUpdate.IsZero() {
		p.LastStaminaUpdate = s.now()
	}
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
