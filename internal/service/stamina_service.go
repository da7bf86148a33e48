package service

import (
	"log"
	"sync"
	"time"

	"wingtrack/internal/models"
	"wingtrack/internal/scheduler"
)

const (
	// one stamina point is regained for every five full minutes elapsed
	regenRate         = 1
	regenIntervalMins = 5

	regenLoopInterval = 60 * time.Second
)

// StaminaService regenerates the profile's stamina from elapsed
// wall-clock time and runs the recurring regeneration loop while a
// profile is active
type StaminaService struct {
	profiles *ProfileService
	sched    scheduler.Scheduler
	now      func() time.Time

	mu       sync.Mutex
	stopLoop func()
}

// NewStaminaService creates a new stamina service
func NewStaminaService(profiles *ProfileService, sched scheduler.Scheduler) *StaminaService {
	return &StaminaService{profiles: profiles, sched: sched, now: time.Now}
}

// Regenerate credits 1 point per 5 whole minutes since the last update.
// Partial intervals are not credited and, crucially, do not advance the
// timestamp: resetting it early would discard progress toward the next
// point and regeneration would never accumulate.
func (s *StaminaService) Regenerate(now time.Time) error {
	return s.profiles.Update(func(p *models.Profile) error {
		elapsedMins := int(now.Sub(p.LastStaminaUpdate).Minutes())
		if elapsedMins < regenIntervalMins {
			return ErrNoChange
		}

		regained := (elapsedMins / regenIntervalMins) * regenRate
		p.Stamina += regained
		if p.Stamina > p.MaxStamina {
			p.Stamina = p.MaxStamina
		}
		p.LastStaminaUpdate = now
		return nil
	})
}

// Sync runs one regeneration pass and reconciles the recurring loop with
// profile presence: started while a profile is active, cancelled when
// none is. Called on every full snapshot read.
func (s *StaminaService) Sync() {
	if s.profiles.Active() {
		if err := s.Regenerate(s.now()); err != nil {
			log.Printf("Stamina regeneration failed: %v", err)
		}
		s.ensureLoop()
		return
	}
	s.StopLoop()
}

func (s *StaminaService) ensureLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopLoop != nil {
		return
	}
	s.stopLoop = s.sched.Every(regenLoopInterval, func() {
		if !s.profiles.Active() {
			return
		}
		if err := s.Regenerate(s.now()); err != nil {
			log.Printf("Stamina regeneration failed: %v", err)
		}
	})
}

// StopLoop cancels the recurring regeneration task
func (s *StaminaService) StopLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopLoop != nil {
		s.stopLoop()
		s.stopLoop = nil
	}
}

// spendStamina deducts cost from the pool after verifying it is covered.
// Insufficient stamina leaves the pool untouched.
func spendStamina(p *models.Profile, cost int) error {
	if p.Stamina < cost {
		return ErrInsufficientStamina
	}
	p.Stamina -= cost
	return nil
}
