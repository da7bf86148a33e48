package service

import (
	"errors"
	"testing"
	"time"

	"wingtrack/internal/models"
	"wingtrack/internal/validation"
)

func newTimerStack(t *testing.T) (*TimerService, *ProfileService, *stubScheduler, *testClock) {
	t.Helper()
	profiles, _, clock := newProfileService(t)
	progression := NewProgressionService(profiles, testCatalog(t))
	progression.now = clock.now
	progression.pick = func(n int) int { return 0 }

	sched := &stubScheduler{}
	timers := NewTimerService(profiles, progression, testCatalog(t), sched)
	timers.now = clock.now
	return timers, profiles, sched, clock
}

func TestStartTimer(t *testing.T) {
	timers, profiles, _, _ := newTimerStack(t)

	// chain-punches costs 8 stamina
	if err := timers.Start("chain-punches", 0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if p := snapshot(t, profiles); p.Stamina != 92 {
		t.Errorf("stamina = %d, want 92 after the charge", p.Stamina)
	}

	active := timers.Active()
	if len(active) != 1 {
		t.Fatalf("active timers = %d, want 1", len(active))
	}
	if active[0].ExerciseID != "chain-punches" {
		t.Errorf("active exercise = %q, want chain-punches", active[0].ExerciseID)
	}
	if active[0].Duration != 120 {
		t.Errorf("duration = %d, want catalog default 120", active[0].Duration)
	}
}

func TestStartTimerUnknownExercise(t *testing.T) {
	timers, _, _, _ := newTimerStack(t)

	err := timers.Start("backflip", 0)
	var vErr validation.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Start(backflip) error = %v, want validation error", err)
	}
}

func TestStartTimerInsufficientStamina(t *testing.T) {
	timers, profiles, _, _ := newTimerStack(t)
	mustUpdate(t, profiles, func(p *models.Profile) error {
		p.Stamina = 5
		return nil
	})

	err := timers.Start("chain-punches", 0)
	if !errors.Is(err, ErrInsufficientStamina) {
		t.Fatalf("Start() error = %v, want ErrInsufficientStamina", err)
	}

	if len(timers.Active()) != 0 {
		t.Error("timer started despite the failed charge")
	}
	if p := snapshot(t, profiles); p.Stamina != 5 {
		t.Errorf("stamina = %d, want untouched 5", p.Stamina)
	}
}

func TestStartTimerTwiceChargesOnce(t *testing.T) {
	timers, profiles, _, _ := newTimerStack(t)

	if err := timers.Start("chain-punches", 0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// a second start against a running countdown is silently rejected
	if err := timers.Start("chain-punches", 0); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	if len(timers.Active()) != 1 {
		t.Fatalf("active timers = %d, want 1", len(timers.Active()))
	}
	if p := snapshot(t, profiles); p.Stamina != 92 {
		t.Errorf("stamina = %d, want a single charge leaving 92", p.Stamina)
	}
}

func TestTimerNaturalCompletion(t *testing.T) {
	timers, profiles, sched, clock := newTimerStack(t)

	if err := timers.Start("chain-punches", 0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// one second short: nothing pays out
	clock.advance(119 * time.Second)
	sched.tickAll()
	if p := snapshot(t, profiles); p.XP != 0 {
		t.Fatalf("xp = %d before the countdown elapsed, want 0", p.XP)
	}

	clock.advance(2 * time.Second)
	sched.tickAll()

	p := snapshot(t, profiles)
	if p.XP != 10 {
		t.Errorf("xp = %d, want the full award of 10", p.XP)
	}
	if got := p.TrainingStats["chain-punches"].Count; got != 1 {
		t.Errorf("completion count = %d, want 1", got)
	}
	if got := p.TrainingStats["chain-punches"].TotalDuration; got != 121 {
		t.Errorf("total duration = %d, want 121 elapsed seconds", got)
	}
	if len(timers.Active()) != 0 {
		t.Error("session still active after completion")
	}

	// stale ticks after completion must not pay out again
	sched.tickAll()
	if p = snapshot(t, profiles); p.XP != 10 {
		t.Errorf("xp = %d after stale tick, want 10", p.XP)
	}
}

func TestTimerCompletionFinishesDailyChallenge(t *testing.T) {
	timers, profiles, sched, clock := newTimerStack(t)
	progression := NewProgressionService(profiles, testCatalog(t))
	progression.now = clock.now
	progression.pick = func(n int) int { return 0 }
	if err := progression.CheckDailyChallenge(); err != nil {
		t.Fatalf("CheckDailyChallenge() error = %v", err)
	}
	challenge := snapshot(t, profiles).Daily.ChallengeID
	if challenge == "" {
		t.Fatal("expected a challenge to be picked")
	}

	if err := timers.Start(challenge, 10); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	clock.advance(11 * time.Second)
	sched.tickAll()

	p := snapshot(t, profiles)
	if !p.Daily.Completed {
		t.Error("finishing the challenged exercise did not complete the challenge")
	}
	if p.Streak != 1 {
		t.Errorf("streak = %d, want 1", p.Streak)
	}
}

func TestTimerCancelProratesXP(t *testing.T) {
	timers, profiles, _, clock := newTimerStack(t)

	// 60 second countdown on a 10 XP exercise
	if err := timers.Start("chain-punches", 60); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	clock.advance(30 * time.Second)

	if err := timers.Stop("chain-punches", true); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	p := snapshot(t, profiles)
	// half the time at half credit: round(10 * 0.5 * 0.5) = 3
	if p.XP != 3 {
		t.Errorf("xp = %d, want prorated 3", p.XP)
	}
	if got := p.TrainingStats["chain-punches"].TotalDuration; got != 30 {
		t.Errorf("total duration = %d, want 30", got)
	}
	// a cancelled session with a payout still counts a completion
	if stat := p.TrainingStats["chain-punches"]; stat.Count != 1 {
		t.Errorf("completion count = %d, want 1", stat.Count)
	}
	if len(timers.Active()) != 0 {
		t.Error("session still active after cancel")
	}
}

func TestStopTimerIsIdempotent(t *testing.T) {
	timers, profiles, _, clock := newTimerStack(t)

	if err := timers.Start("chain-punches", 60); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	clock.advance(30 * time.Second)
	if err := timers.Stop("chain-punches", true); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	xp := snapshot(t, profiles).XP

	if err := timers.Stop("chain-punches", true); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
	if got := snapshot(t, profiles).XP; got != xp {
		t.Errorf("second stop changed xp from %d to %d", xp, got)
	}
}

func TestStartPlanRunsStepsSequentially(t *testing.T) {
	timers, profiles, sched, clock := newTimerStack(t)

	// Centreline Basics: turning-stance 120, siu-nim-tau 300,
	// chain-punches 180, stretch-routine 240; cost 26, bonus 30
	if err := timers.StartPlan("skill-beginner-centreline"); err != nil {
		t.Fatalf("StartPlan() error = %v", err)
	}

	if p := snapshot(t, profiles); p.Stamina != 74 {
		t.Errorf("stamina = %d, want the full cost charged up front leaving 74", p.Stamina)
	}

	status, ok := timers.ActivePlan()
	if !ok {
		t.Fatal("expected an active plan")
	}
	if status.TotalSteps != 4 || status.CurrentStep != 0 {
		t.Errorf("plan status = %+v, want 4 steps at step 0", status)
	}

	steps := []struct {
		id       string
		duration time.Duration
	}{
		{"turning-stance", 120 * time.Second},
		{"siu-nim-tau", 300 * time.Second},
		{"chain-punches", 180 * time.Second},
		{"stretch-routine", 240 * time.Second},
	}
	for i, step := range steps {
		active := timers.Active()
		if len(active) != 1 || active[0].ExerciseID != step.id {
			t.Fatalf("step %d: active = %+v, want %s", i, active, step.id)
		}
		clock.advance(step.duration + time.Second)
		sched.tickAll()
	}

	if _, ok := timers.ActivePlan(); ok {
		t.Error("plan still active after the final step")
	}
	if len(timers.Active()) != 0 {
		t.Error("a countdown survived the plan")
	}

	p := snapshot(t, profiles)
	// per-step XP 15+25+10+0 plus the 30 XP completion bonus
	if p.XP != 80 {
		t.Errorf("xp = %d, want 80", p.XP)
	}
	if p.Stamina != 74 {
		t.Errorf("stamina = %d, steps must not charge again", p.Stamina)
	}
}

func TestStartPlanRejectsSecondPlan(t *testing.T) {
	timers, _, _, _ := newTimerStack(t)

	if err := timers.StartPlan("skill-beginner-centreline"); err != nil {
		t.Fatalf("StartPlan() error = %v", err)
	}

	err := timers.StartPlan("cond-beginner-foundations")
	var vErr validation.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("second StartPlan() error = %v, want validation error", err)
	}
}

func TestStartPlanRejectsWhenLaterStepIsRunning(t *testing.T) {
	timers, profiles, _, _ := newTimerStack(t)

	// chain-punches is the third step of Centreline Basics
	if err := timers.Start("chain-punches", 0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	err := timers.StartPlan("skill-beginner-centreline")
	var vErr validation.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("StartPlan() error = %v, want validation error", err)
	}
	if _, ok := timers.ActivePlan(); ok {
		t.Error("rejected plan must not stay active")
	}
	if p := snapshot(t, profiles); p.Stamina != 92 {
		t.Errorf("stamina = %d, want only the solo charge of 8 taken", p.Stamina)
	}
}

func TestPlanAbortRefundsUnexecutedSteps(t *testing.T) {
	timers, profiles, sched, clock := newTimerStack(t)

	if err := timers.StartPlan("skill-beginner-centreline"); err != nil {
		t.Fatalf("StartPlan() error = %v", err)
	}
	// a long solo session of the third step's exercise, started once the
	// plan is already under way
	if err := timers.Start("chain-punches", 600); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	clock.advance(121 * time.Second)
	sched.tickAll()
	clock.advance(301 * time.Second)
	sched.tickAll()

	if _, ok := timers.ActivePlan(); ok {
		t.Fatal("plan must abort when its next step is already running")
	}
	active := timers.Active()
	if len(active) != 1 || active[0].ExerciseID != "chain-punches" {
		t.Fatalf("active = %+v, want only the solo chain-punches session", active)
	}

	p := snapshot(t, profiles)
	// 100 - 26 (plan) - 8 (solo) + 8 (chain-punches and stretch-routine
	// never ran; stretch-routine is free)
	if p.Stamina != 74 {
		t.Errorf("stamina = %d, want 74 after the refund", p.Stamina)
	}
	// the two finished steps pay out, no completion bonus
	if p.XP != 40 {
		t.Errorf("xp = %d, want 40", p.XP)
	}
}

func TestStartPlanUnknownID(t *testing.T) {
	timers, _, _, _ := newTimerStack(t)

	err := timers.StartPlan("no-such-plan")
	var vErr validation.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("StartPlan() error = %v, want validation error", err)
	}
}

func TestStartCustomPlanChargesSummedCost(t *testing.T) {
	timers, profiles, _, _ := newTimerStack(t)

	plan, err := profiles.CreatePlan("Morning drills", []models.PlanStep{
		{ExerciseID: "chain-punches", Duration: 60},
		{ExerciseID: "horse-stance-hold", Duration: 60},
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	if err := timers.StartPlan(plan.ID); err != nil {
		t.Fatalf("StartPlan() error = %v", err)
	}

	// chain-punches 8 + horse-stance-hold 10
	if p := snapshot(t, profiles); p.Stamina != 82 {
		t.Errorf("stamina = %d, want 82", p.Stamina)
	}
}

func TestStopPlanProratesCurrentStepOnly(t *testing.T) {
	timers, profiles, sched, clock := newTimerStack(t)

	if err := timers.StartPlan("skill-beginner-centreline"); err != nil {
		t.Fatalf("StartPlan() error = %v", err)
	}

	// finish the first step naturally, then cancel halfway through the second
	clock.advance(121 * time.Second)
	sched.tickAll()
	clock.advance(150 * time.Second)

	if err := timers.StopPlan(); err != nil {
		t.Fatalf("StopPlan() error = %v", err)
	}

	if _, ok := timers.ActivePlan(); ok {
		t.Error("plan still active after cancel")
	}
	if len(timers.Active()) != 0 {
		t.Error("a countdown survived the cancel")
	}

	p := snapshot(t, profiles)
	// turning-stance paid in full (15), siu-nim-tau prorated:
	// round(25 * 150/300 * 0.5) = 6, and no completion bonus
	if p.XP != 21 {
		t.Errorf("xp = %d, want 21", p.XP)
	}
}

func TestStopPlanWithoutActivePlanIsNoOp(t *testing.T) {
	timers, _, _, _ := newTimerStack(t)
	if err := timers.StopPlan(); err != nil {
		t.Errorf("StopPlan() error = %v, want nil", err)
	}
}
