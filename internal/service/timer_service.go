package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"wingtrack/internal/catalog"
	"wingtrack/internal/models"
	"wingtrack/internal/scheduler"
	"wingtrack/internal/validation"
)

const tickInterval = time.Second

// cancellation pays out half credit, prorated by the fraction completed
const cancelPenalty = 0.5

// errAlreadyRunning marks a start against an exercise that already has a
// live countdown. The public Start swallows it (at-most-one-per-id is a
// silent rejection); the plan runner treats it as a hard conflict.
var errAlreadyRunning = errors.New("timer already running")

// TimerStatus is a read-only view of a live countdown
type TimerStatus struct {
	ExerciseID string  `json:"exerciseId"`
	Elapsed    int     `json:"elapsed"`
	Duration   int     `json:"duration"`
	Display    string  `json:"display"`
	Progress   float64 `json:"progress"`
	PlanStep   bool    `json:"planStep"`
}

// PlanStatus is a read-only view of the running plan session
type PlanStatus struct {
	PlanID      string `json:"planId"`
	Name        string `json:"name"`
	CurrentStep int    `json:"currentStep"`
	TotalSteps  int    `json:"totalSteps"`
}

type timerSession struct {
	itemID    string
	duration  int
	startedAt time.Time
	elapsed   int
	stop      func()
	planStep  bool
}

type planSession struct {
	id      string
	name    string
	steps   []models.PlanStep
	index   int
	bonusXP int
}

// TimerService drives the per-exercise countdown state machine
// (Idle -> Running -> Completed/Cancelled -> Idle) and the sequential
// plan runner on top of it. Task handles live in a map keyed by exercise
// id; at most one countdown runs per exercise, and at most one plan runs
// system-wide.
type TimerService struct {
	profiles    *ProfileService
	progression *ProgressionService
	catalog     *catalog.Catalog
	sched       scheduler.Scheduler
	now         func() time.Time

	// lock order is always mu before the profile service's lock
	mu       sync.Mutex
	sessions map[string]*timerSession
	plan     *planSession
}

// NewTimerService creates a new timer service
func NewTimerService(profiles *ProfileService, progression *ProgressionService, cat *catalog.Catalog, sched scheduler.Scheduler) *TimerService {
	s := &TimerService{
		profiles:    profiles,
		progression: progression,
		catalog:     cat,
		sched:       sched,
		now:         time.Now,
		sessions:    map[string]*timerSession{},
	}
	return s
}

// Start begins a countdown for an exercise, charging its stamina cost up
// front. A countdown already running for the id is rejected silently.
func (s *TimerService) Start(exerciseID string, duration int) error {
	item, ok := s.catalog.Item(exerciseID)
	if !ok {
		return validation.ValidationError{Field: "exercise", Message: "unknown exercise: " + exerciseID}
	}
	if duration <= 0 {
		duration = item.Duration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.startLocked(item, duration, true, false)
	if errors.Is(err, errAlreadyRunning) {
		return nil
	}
	return err
}

func (s *TimerService) startLocked(item catalog.TrainingItem, duration int, charge, planStep bool) error {
	if _, running := s.sessions[item.ID]; running {
		return errAlreadyRunning
	}

	if charge {
		err := s.profiles.Update(func(p *models.Profile) error {
			return spendStamina(p, item.StaminaCost)
		})
		if err != nil {
			return err
		}
	}

	sess := &timerSession{
		itemID:    item.ID,
		duration:  duration,
		startedAt: s.now(),
		planStep:  planStep,
	}
	s.sessions[item.ID] = sess
	sess.stop = s.sched.Every(tickInterval, func() { s.tick(item.ID) })
	return nil
}

// tick advances one countdown by recomputing elapsed wall-clock seconds.
// Reaching the configured duration is a natural completion: the full XP
// is awarded exactly once, then the session goes through the common stop
// path with userCancelled = false.
func (s *TimerService) tick(exerciseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[exerciseID]
	if sess == nil {
		return
	}

	elapsed := int(s.now().Sub(sess.startedAt).Seconds())
	sess.elapsed = elapsed
	if elapsed < sess.duration {
		return
	}

	item, _ := s.catalog.Item(exerciseID)
	if err := s.progression.AddXP(item.XP, item.ID); err != nil {
		log.Printf("Failed to award XP for %s: %v", item.ID, err)
	}
	if err := s.progression.CompleteChallenge(item.ID); err != nil {
		log.Printf("Failed to record challenge completion for %s: %v", item.ID, err)
	}
	s.stopLocked(sess, false)
}

// Stop ends the countdown for an exercise. A user cancellation pays out
// prorated XP; stopping an id with no live countdown is a no-op.
func (s *TimerService) Stop(exerciseID string, userCancelled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[exerciseID]
	if sess == nil {
		return nil
	}
	s.stopLocked(sess, userCancelled)
	return nil
}

// stopLocked is the single exit path from Running. Elapsed time always
// lands in the exercise's cumulative duration stat; XP for natural
// completions was already awarded by the tick handler and must not be
// paid again here.
func (s *TimerService) stopLocked(sess *timerSession, userCancelled bool) {
	sess.stop()
	actualElapsed := int(s.now().Sub(sess.startedAt).Seconds())

	item, _ := s.catalog.Item(sess.itemID)
	if userCancelled {
		prorated := int(math.Round(float64(item.XP) * (float64(actualElapsed) / float64(sess.duration)) * cancelPenalty))
		if err := s.progression.AddXP(prorated, item.ID); err != nil {
			log.Printf("Failed to award prorated XP for %s: %v", item.ID, err)
		}
	}

	err := s.profiles.Update(func(p *models.Profile) error {
		stat := p.TrainingStats[sess.itemID]
		if stat == nil {
			stat = &models.TrainingStat{}
			p.TrainingStats[sess.itemID] = stat
		}
		stat.TotalDuration += actualElapsed
		return nil
	})
	if err != nil {
		log.Printf("Failed to record training duration for %s: %v", sess.itemID, err)
	}

	delete(s.sessions, sess.itemID)

	if sess.planStep && s.plan != nil {
		if userCancelled {
			s.plan = nil
		} else {
			s.advancePlanLocked()
		}
	}
}

// StartPlan runs a recommended or custom plan: the whole session's
// stamina is charged up front, then the steps execute sequentially
// through the countdown engine without further charges.
func (s *TimerService) StartPlan(planID string) error {
	name, steps, bonusXP, cost, err := s.resolvePlan(planID)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return validation.ValidationError{Field: "plan", Message: "plan has no exercises"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plan != nil {
		return validation.ValidationError{Field: "plan", Message: "a plan is already running"}
	}
	// every conflict is knowable now: reject before charging rather than
	// aborting mid-plan
	for _, step := range steps {
		if _, running := s.sessions[step.ExerciseID]; running {
			return validation.ValidationError{Field: "plan", Message: "an exercise of this plan is already running"}
		}
	}

	err = s.profiles.Update(func(p *models.Profile) error {
		return spendStamina(p, cost)
	})
	if err != nil {
		return err
	}

	s.plan = &planSession{id: planID, name: name, steps: steps, bonusXP: bonusXP}
	if err := s.startStepLocked(); err != nil {
		s.plan = nil
		s.refundStaminaLocked(cost)
		return err
	}
	return nil
}

// StopPlan cancels the running plan session. The in-flight step pays out
// prorated XP like any cancelled countdown; completed steps keep their
// rewards. Stopping with no active plan is a no-op.
func (s *TimerService) StopPlan() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plan == nil {
		return nil
	}

	step := s.plan.steps[s.plan.index]
	if sess := s.sessions[step.ExerciseID]; sess != nil {
		s.stopLocked(sess, true) // clears s.plan via the plan-step path
	} else {
		s.plan = nil
	}
	return nil
}

func (s *TimerService) advancePlanLocked() {
	plan := s.plan
	plan.index++
	if plan.index >= len(plan.steps) {
		if plan.bonusXP > 0 {
			if err := s.progression.AddXP(plan.bonusXP, ""); err != nil {
				log.Printf("Failed to award plan bonus XP for %s: %v", plan.id, err)
			}
		}
		s.plan = nil
		return
	}

	if err := s.startStepLocked(); err != nil {
		log.Printf("Plan %s aborted at step %d: %v", plan.id, plan.index, err)
		s.plan = nil
		s.refundStaminaLocked(s.remainingStepCost(plan))
	}
}

// remainingStepCost sums the stamina cost of the steps the plan never ran,
// the aborted step included.
func (s *TimerService) remainingStepCost(plan *planSession) int {
	total := 0
	for _, step := range plan.steps[plan.index:] {
		if item, ok := s.catalog.Item(step.ExerciseID); ok {
			total += item.StaminaCost
		}
	}
	return total
}

func (s *TimerService) refundStaminaLocked(amount int) {
	if amount <= 0 {
		return
	}
	err := s.profiles.Update(func(p *models.Profile) error {
		p.Stamina += amount
		if p.Stamina > p.MaxStamina {
			p.Stamina = p.MaxStamina
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to refund stamina: %v", err)
	}
}

func (s *TimerService) startStepLocked() error {
	step := s.plan.steps[s.plan.index]
	item, ok := s.catalog.Item(step.ExerciseID)
	if !ok {
		return fmt.Errorf("plan references unknown exercise: %s", step.ExerciseID)
	}
	duration := step.Duration
	if duration <= 0 {
		duration = item.Duration
	}
	return s.startLocked(item, duration, false, true)
}

func (s *TimerService) resolvePlan(planID string) (name string, steps []models.PlanStep, bonusXP, cost int, err error) {
	if plan, ok := s.catalog.Plan(planID); ok {
		return plan.Name, plan.Steps(), plan.XPAwarded, plan.StaminaCost, nil
	}

	found := false
	viewErr := s.profiles.View(func(p *models.Profile) error {
		for _, plan := range p.CustomPlans {
			if plan.ID == planID {
				name = plan.Name
				steps = append([]models.PlanStep(nil), plan.Exercises...)
				found = true
				return nil
			}
		}
		return nil
	})
	if viewErr != nil {
		return "", nil, 0, 0, viewErr
	}
	if !found {
		return "", nil, 0, 0, validation.ValidationError{Field: "plan", Message: "unknown plan: " + planID}
	}

	// custom plans cost the sum of their exercise costs and carry no bonus
	for _, step := range steps {
		if item, ok := s.catalog.Item(step.ExerciseID); ok {
			cost += item.StaminaCost
		}
	}
	return name, steps, 0, cost, nil
}

// Active returns the live countdowns ordered by exercise id
func (s *TimerService) Active() []TimerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]TimerStatus, 0, len(s.sessions))
	for _, sess := range s.sessions {
		progress := float64(sess.elapsed) / float64(sess.duration)
		if progress > 1 {
			progress = 1
		}
		statuses = append(statuses, TimerStatus{
			ExerciseID: sess.itemID,
			Elapsed:    sess.elapsed,
			Duration:   sess.duration,
			Display:    fmt.Sprintf("%02d:%02d", sess.elapsed/60, sess.elapsed%60),
			Progress:   progress,
			PlanStep:   sess.planStep,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ExerciseID < statuses[j].ExerciseID })
	return statuses
}

// ActivePlan returns the running plan session, if any
func (s *TimerService) ActivePlan() (PlanStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.plan == nil {
		return PlanStatus{}, false
	}
	return PlanStatus{
		PlanID:      s.plan.id,
		Name:        s.plan.name,
		CurrentStep: s.plan.index,
		TotalSteps:  len(s.plan.steps),
	}, true
}

// StopAll cancels every live countdown and the plan session without
// paying out rewards, for shutdown
func (s *TimerService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.stop()
		delete(s.sessions, id)
	}
	s.plan = nil
}
