package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxStamina is the stamina pool size for new profiles
const DefaultMaxStamina = 100

// Profile is the single student progress record. It is persisted as one
// JSON document; the field set mirrors what older app versions stored, so
// missing fields must be tolerated and repaired on load.
type Profile struct {
	Name     string  `json:"name"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
	BMI      float64 `json:"bmi"`
	Avatar   string  `json:"avatar"`

	XP                int                      `json:"xp"`
	UnlockedBeltLevel int                      `json:"unlockedBeltLevel"`
	Achievements      []string                 `json:"achievements"`
	Streak            int                      `json:"streak"`
	Daily             DailyChallenge           `json:"daily"`
	History           []HistoryEntry           `json:"history"`
	TrainingStats     map[string]*TrainingStat `json:"trainingStats"`
	CustomPlans       []CustomPlan             `json:"customPlans"`

	CreatedAt time.Time `json:"createdAt"`
	StudentID string    `json:"studentId"`
	IsNew     bool      `json:"isNew"`

	NewContent NewContentFlags `json:"newContent"`
	Theme      string          `json:"theme"`

	Stamina           int       `json:"stamina"`
	MaxStamina        int       `json:"maxStamina"`
	LastStaminaUpdate time.Time `json:"lastStaminaUpdate"`
}

// DailyChallenge records the one randomly offered exercise for a calendar
// day. ChallengeID is empty when no eligible exercise existed at rotation.
type DailyChallenge struct {
	Date        string `json:"date"`
	ChallengeID string `json:"challengeId"`
	Completed   bool   `json:"completed"`
}

// HistoryEntry is one day of the XP ledger. At most one entry exists per
// calendar date; same-day gains accumulate.
type HistoryEntry struct {
	Date     string `json:"date"`
	XPGained int    `json:"xpGained"`
}

// TrainingStat tracks per-exercise totals
type TrainingStat struct {
	Count         int `json:"count"`
	TotalDuration int `json:"totalDuration"`
}

// NewContentFlags marks sections with unlocked-but-unseen content
type NewContentFlags struct {
	Skill bool `json:"skill"`
	Belts bool `json:"belts"`
}

// CustomPlan is a user-assembled training plan
type CustomPlan struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []PlanStep `json:"exercises"`
}

// PlanStep pairs an exercise with its configured duration in seconds
type PlanStep struct {
	ExerciseID string `json:"id"`
	Duration   int    `json:"duration"`
}

// DecodeProfile unmarshals a persisted or imported profile document.
// Stamina is pre-seeded with -1 so a document that predates the stamina
// system can be told apart from one with a genuinely empty pool; repair
// turns the sentinel into the default.
func DecodeProfile(data []byte) (*Profile, error) {
	p := &Profile{Stamina: -1}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DateKey formats a timestamp as the local calendar day used by the
// history ledger and the daily challenge.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// StudentIDFor derives the student identifier from the profile creation time
func StudentIDFor(createdAt time.Time) string {
	return "WT-" + strings.ToUpper(strconv.FormatInt(createdAt.UnixMilli(), 36))
}

// HasAchievement reports whether the achievement key is already unlocked
func (p *Profile) HasAchievement(key string) bool {
	for _, a := range p.Achievements {
		if a == key {
			return true
		}
	}
	return false
}

// TotalTrainingSeconds sums cumulative duration across all exercises
func (p *Profile) TotalTrainingSeconds() int {
	total := 0
	for _, s := range p.TrainingStats {
		total += s.TotalDuration
	}
	return total
}

// TotalCompletions sums completion counts across all exercises
func (p *Profile) TotalCompletions() int {
	total := 0
	for _, s := range p.TrainingStats {
		total += s.Count
	}
	return total
}

// Clone returns a deep copy of the profile for handing to readers outside
// the store's lock
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Achievements = append([]string(nil), p.Achievements...)
	cp.History = append([]HistoryEntry(nil), p.History...)
	cp.TrainingStats = make(map[string]*TrainingStat, len(p.TrainingStats))
	for id, s := range p.TrainingStats {
		c := *s
		cp.TrainingStats[id] = &c
	}
	cp.CustomPlans = make([]CustomPlan, len(p.CustomPlans))
	for i, plan := range p.CustomPlans {
		cp.CustomPlans[i] = plan
		cp.CustomPlans[i].Exercises = append([]PlanStep(nil), plan.Exercises...)
	}
	return &cp
}
