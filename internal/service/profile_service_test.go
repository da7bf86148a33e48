package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wingtrack/internal/models"
	"wingtrack/internal/validation"
)

func TestSaveFormCreatesProfile(t *testing.T) {
	store := &memStore{}
	clock := newTestClock()
	svc := NewProfileService(store, testCatalog(t))
	svc.now = clock.now

	err := svc.SaveForm(ProfileForm{Name: "Ip Man", HeightCm: 170, WeightKg: 65})
	if err != nil {
		t.Fatalf("SaveForm() error = %v", err)
	}

	p := snapshot(t, svc)
	if p.Name != "Ip Man" {
		t.Errorf("name = %q, want Ip Man", p.Name)
	}
	if p.BMI != 22.5 {
		t.Errorf("bmi = %v, want 22.5", p.BMI)
	}
	if p.Stamina != models.DefaultMaxStamina {
		t.Errorf("stamina = %d, want a full pool", p.Stamina)
	}
	if p.StudentID == "" {
		t.Error("student id was not assigned")
	}
	if !p.IsNew {
		t.Error("fresh profile must carry the onboarding flag")
	}
	if p.Avatar == "" {
		t.Error("avatar was not defaulted")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestSaveFormValidation(t *testing.T) {
	tests := []struct {
		name string
		form ProfileForm
	}{
		{"empty name", ProfileForm{Name: "", HeightCm: 170, WeightKg: 65}},
		{"height too low", ProfileForm{Name: "Ip Man", HeightCm: 80, WeightKg: 65}},
		{"height too high", ProfileForm{Name: "Ip Man", HeightCm: 300, WeightKg: 65}},
		{"weight too low", ProfileForm{Name: "Ip Man", HeightCm: 170, WeightKg: 10}},
		{"weight too high", ProfileForm{Name: "Ip Man", HeightCm: 170, WeightKg: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			svc := NewProfileService(store, testCatalog(t))

			err := svc.SaveForm(tt.form)
			var vErr validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("SaveForm() error = %v, want validation error", err)
			}
			if store.saves != 0 {
				t.Error("invalid form reached the store")
			}
		})
	}
}

func TestSaveFormUpdatePreservesProgression(t *testing.T) {
	svc, _, _ := newProfileService(t)
	mustUpdate(t, svc, func(p *models.Profile) error {
		p.XP = 500
		p.UnlockedBeltLevel = 2
		return nil
	})

	err := svc.SaveForm(ProfileForm{Name: "Wong", HeightCm: 180, WeightKg: 80, Avatar: "snake"})
	if err != nil {
		t.Fatalf("SaveForm() error = %v", err)
	}

	p := snapshot(t, svc)
	if p.Name != "Wong" || p.Avatar != "snake" {
		t.Errorf("identity not updated: name=%q avatar=%q", p.Name, p.Avatar)
	}
	if p.XP != 500 || p.UnlockedBeltLevel != 2 {
		t.Errorf("progression disturbed: xp=%d belt=%d", p.XP, p.UnlockedBeltLevel)
	}
	if p.IsNew {
		t.Error("editing an existing profile re-raised the onboarding flag")
	}
}

func TestConsumeOnboarding(t *testing.T) {
	svc, _, _ := newProfileService(t)

	first, err := svc.ConsumeOnboarding()
	if err != nil {
		t.Fatalf("ConsumeOnboarding() error = %v", err)
	}
	if !first {
		t.Fatal("expected the first read to report onboarding")
	}

	second, err := svc.ConsumeOnboarding()
	if err != nil {
		t.Fatalf("ConsumeOnboarding() error = %v", err)
	}
	if second {
		t.Error("onboarding reported twice")
	}
}

func TestConsumeOnboardingWithoutProfile(t *testing.T) {
	svc := NewProfileService(&memStore{}, testCatalog(t))
	got, err := svc.ConsumeOnboarding()
	if err != nil {
		t.Fatalf("ConsumeOnboarding() error = %v", err)
	}
	if got {
		t.Error("reported onboarding with no profile")
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "valid document",
			doc:  `{"name":"Ip Man","xp":250}`,
		},
		{
			name:    "missing xp",
			doc:     `{"name":"Ip Man"}`,
			wantErr: true,
		},
		{
			name:    "non-numeric xp",
			doc:     `{"name":"Ip Man","xp":"lots"}`,
			wantErr: true,
		},
		{
			name:    "missing name",
			doc:     `{"xp":250}`,
			wantErr: true,
		},
		{
			name:    "not json",
			doc:     `not a profile`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newProfileService(t)
			mustUpdate(t, svc, func(p *models.Profile) error {
				p.XP = 42
				return nil
			})

			err := svc.Import([]byte(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Import() error = %v, wantErr %v", err, tt.wantErr)
			}

			p := snapshot(t, svc)
			if tt.wantErr {
				if p.XP != 42 {
					t.Errorf("rejected import changed xp to %d", p.XP)
				}
				return
			}
			if p.XP != 250 {
				t.Errorf("xp = %d, want imported 250", p.XP)
			}
		})
	}
}

func TestImportRepairsOldDocuments(t *testing.T) {
	svc, _, _ := newProfileService(t)

	// a document from before the stamina system existed
	doc := `{"name":"Ip Man","xp":100,"createdAt":"2024-01-02T00:00:00Z"}`
	if err := svc.Import([]byte(doc)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	p := snapshot(t, svc)
	if p.Stamina != models.DefaultMaxStamina {
		t.Errorf("stamina = %d, want the repaired default", p.Stamina)
	}
	if p.MaxStamina != models.DefaultMaxStamina {
		t.Errorf("max stamina = %d, want the repaired default", p.MaxStamina)
	}
	if p.StudentID == "" {
		t.Error("student id was not backfilled")
	}
	if p.Theme != "default" {
		t.Errorf("theme = %q, want default", p.Theme)
	}
	if p.TrainingStats == nil || p.Achievements == nil {
		t.Error("collections were not initialised")
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	svc, _, _ := newProfileService(t)

	// importing an old-shape document runs the first repair pass
	doc := `{"name":"Ip Man","xp":100,"createdAt":"2024-01-02T00:00:00Z"}`
	if err := svc.Import([]byte(doc)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	repaired, err := svc.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// feeding the repaired document through a second repair pass must
	// reproduce it byte for byte
	again := NewProfileService(&memStore{}, testCatalog(t))
	again.now = newTestClock().now
	if err := again.Import(repaired); err != nil {
		t.Fatalf("re-importing the repaired document: %v", err)
	}
	twiceRepaired, err := again.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if !bytes.Equal(repaired, twiceRepaired) {
		t.Errorf("repair is not idempotent:\nfirst:  %s\nsecond: %s", repaired, twiceRepaired)
	}
}

func TestImportPreservesExplicitZeroStamina(t *testing.T) {
	svc, _, _ := newProfileService(t)

	doc := `{"name":"Ip Man","xp":100,"stamina":0,"maxStamina":100}`
	if err := svc.Import([]byte(doc)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if p := snapshot(t, svc); p.Stamina != 0 {
		t.Errorf("stamina = %d, an explicit zero must survive import", p.Stamina)
	}
}

func TestExportRoundTrip(t *testing.T) {
	svc, _, _ := newProfileService(t)
	mustUpdate(t, svc, func(p *models.Profile) error {
		p.XP = 321
		return nil
	})

	data, err := svc.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded["xp"].(float64) != 321 {
		t.Errorf("exported xp = %v, want 321", decoded["xp"])
	}
}

func TestExportWithoutProfile(t *testing.T) {
	svc := NewProfileService(&memStore{}, testCatalog(t))
	if _, err := svc.Export(); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("Export() error = %v, want ErrNoProfile", err)
	}
}

func TestDelete(t *testing.T) {
	svc, store, _ := newProfileService(t)

	if err := svc.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if svc.Active() {
		t.Error("profile still active after delete")
	}
	if store.deletes != 1 {
		t.Errorf("store deletes = %d, want 1", store.deletes)
	}

	if err := svc.Delete(); !errors.Is(err, ErrNoProfile) {
		t.Errorf("second Delete() error = %v, want ErrNoProfile", err)
	}
}

func TestCreatePlan(t *testing.T) {
	svc, _, _ := newProfileService(t)

	plan, err := svc.CreatePlan("Morning", []models.PlanStep{
		{ExerciseID: "chain-punches", Duration: 90},
		{ExerciseID: "siu-nim-tau"}, // duration falls back to the default
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if plan.ID == "" {
		t.Error("plan id was not assigned")
	}
	if plan.Exercises[0].Duration != 90 {
		t.Errorf("explicit duration = %d, want 90", plan.Exercises[0].Duration)
	}
	if plan.Exercises[1].Duration != 300 {
		t.Errorf("defaulted duration = %d, want the catalog's 300", plan.Exercises[1].Duration)
	}

	if p := snapshot(t, svc); len(p.CustomPlans) != 1 {
		t.Errorf("custom plans = %d, want 1", len(p.CustomPlans))
	}
}

func TestCreatePlanValidation(t *testing.T) {
	svc, _, _ := newProfileService(t)

	if _, err := svc.CreatePlan("", []models.PlanStep{{ExerciseID: "chain-punches"}}); err == nil {
		t.Error("expected an error for a missing name")
	}
	if _, err := svc.CreatePlan("Empty", nil); err == nil {
		t.Error("expected an error for an empty step list")
	}
	if _, err := svc.CreatePlan("Bad", []models.PlanStep{{ExerciseID: "backflip"}}); err == nil {
		t.Error("expected an error for an unknown exercise")
	}
}

func TestDeletePlan(t *testing.T) {
	svc, _, _ := newProfileService(t)
	plan, err := svc.CreatePlan("Morning", []models.PlanStep{{ExerciseID: "chain-punches"}})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	if err := svc.DeletePlan(plan.ID); err != nil {
		t.Fatalf("DeletePlan() error = %v", err)
	}
	if p := snapshot(t, svc); len(p.CustomPlans) != 0 {
		t.Errorf("custom plans = %d, want 0", len(p.CustomPlans))
	}

	// unknown ids are a no-op
	if err := svc.DeletePlan("missing"); err != nil {
		t.Errorf("DeletePlan(missing) error = %v, want nil", err)
	}
}

func TestLoadFromStoreRepairs(t *testing.T) {
	stale := &models.Profile{
		Name:      "Old Hand",
		XP:        900,
		CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Stamina:   -1,
	}
	store := &memStore{loadWith: stale}
	svc := NewProfileService(store, testCatalog(t))

	if err := svc.LoadFromStore(); err != nil {
		t.Fatalf("LoadFromStore() error = %v", err)
	}

	p := snapshot(t, svc)
	if p.Stamina != models.DefaultMaxStamina {
		t.Errorf("stamina = %d, want the repaired default", p.Stamina)
	}
	if p.StudentID == "" {
		t.Error("student id was not backfilled")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	svc, _, _ := newProfileService(t)

	p := snapshot(t, svc)
	p.XP = 9999
	p.Achievements = append(p.Achievements, "forged")

	if q := snapshot(t, svc); q.XP != 0 || len(q.Achievements) != 0 {
		t.Error("mutating a snapshot leaked into the service state")
	}
}
