package service

import (
	"errors"
	"testing"
	"time"

	"wingtrack/internal/catalog"
	"wingtrack/internal/models"
)

// memStore is an in-memory ProfileStore for tests
type memStore struct {
	profile  *models.Profile
	saves    int
	saveErr  error
	deletes  int
	loadWith *models.Profile
}

func (m *memStore) Load() (*models.Profile, error) {
	if m.loadWith != nil {
		return m.loadWith.Clone(), nil
	}
	return nil, nil
}

func (m *memStore) Save(p *models.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profile = p.Clone()
	m.saves++
	return nil
}

func (m *memStore) Delete() error {
	m.profile = nil
	m.deletes++
	return nil
}

// stubScheduler collects scheduled functions so tests can fire ticks
// manually
type stubScheduler struct {
	fns     []func()
	stopped int
}

func (s *stubScheduler) Every(interval time.Duration, fn func()) func() {
	s.fns = append(s.fns, fn)
	return func() { s.stopped++ }
}

func (s *stubScheduler) tickAll() {
	for _, fn := range s.fns {
		fn()
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return cat
}

var testEpoch = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// testClock is a controllable time source
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: testEpoch}
}

func (c *testClock) now() time.Time {
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// newProfileService builds a profile service with an in-memory store and
// a controllable clock, pre-populated with a fresh profile
func newProfileService(t *testing.T) (*ProfileService, *memStore, *testClock) {
	t.Helper()

	store := &memStore{}
	clock := newTestClock()
	svc := NewProfileService(store, testCatalog(t))
	svc.now = clock.now

	err := svc.SaveForm(ProfileForm{Name: "Ip Man", HeightCm: 170, WeightKg: 65})
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return svc, store, clock
}

func mustUpdate(t *testing.T, svc *ProfileService, fn func(p *models.Profile) error) {
	t.Helper()
	if err := svc.Update(fn); err != nil && !errors.Is(err, ErrNoChange) {
		t.Fatalf("profile update failed: %v", err)
	}
}

func snapshot(t *testing.T, svc *ProfileService) *models.Profile {
	t.Helper()
	p, ok := svc.Snapshot()
	if !ok {
		t.Fatal("expected an active profile")
	}
	return p
}
