// Package catalog holds the immutable training content: exercises, the
// belt progression, achievements, recommended plans, themes and avatars.
// All lookups go through maps indexed once at construction.
package catalog

import (
	"fmt"

	"wingtrack/internal/models"
)

// TrainingItem is one timed exercise
type TrainingItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Duration     int    `json:"duration"` // default seconds
	XP           int    `json:"xp"`
	StaminaCost  int    `json:"staminaCost"`
	RequiredBelt int    `json:"requiredBelt"`
	VideoRef     string `json:"videoRef,omitempty"`
}

// Belt is one tier of the progression
type Belt struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Color string `json:"color"`
	MinXP int    `json:"minXp"`
}

// Achievement metrics evaluated against the profile
const (
	MetricXP          = "xp"
	MetricCompletions = "completions"
	MetricDuration    = "duration" // cumulative seconds
	MetricStreak      = "streak"
	MetricBelt        = "belt"
)

// Achievement is a threshold rule over a single profile metric. Keys are
// persisted in profiles, so they must stay stable.
type Achievement struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Desc      string `json:"desc"`
	Icon      string `json:"icon"`
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
}

// PlanExercise pairs an exercise id with its duration inside a plan phase
type PlanExercise struct {
	ID       string `json:"id"`
	Duration int    `json:"duration"`
}

// PlanPhases groups a recommended plan's exercises into ordered phases
type PlanPhases struct {
	Warmup   []PlanExercise `json:"warmup"`
	Main     []PlanExercise `json:"main"`
	Cooldown []PlanExercise `json:"cooldown"`
}

// RecommendedPlan is a curated multi-phase training session
type RecommendedPlan struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Difficulty    string     `json:"difficulty"`
	Phases        PlanPhases `json:"phases"`
	TotalDuration int        `json:"totalDuration"`
	StaminaCost   int        `json:"staminaCost"`
	XPAwarded     int        `json:"xpAwarded"`
}

// Steps flattens the plan's phases into the ordered step list the runner
// executes: warmup, then main, then cooldown
func (p RecommendedPlan) Steps() []models.PlanStep {
	var steps []models.PlanStep
	for _, phase := range [][]PlanExercise{p.Phases.Warmup, p.Phases.Main, p.Phases.Cooldown} {
		for _, ex := range phase {
			steps = append(steps, models.PlanStep{ExerciseID: ex.ID, Duration: ex.Duration})
		}
	}
	return steps
}

// Theme is one entry of the fixed palette
type Theme struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Avatar is a selectable profile picture
type Avatar struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

// Catalog provides indexed access to the static content
type Catalog struct {
	items        []TrainingItem
	itemsByID    map[string]TrainingItem
	belts        []Belt
	beltsByLevel map[int]Belt
	achievements []Achievement
	plans        []RecommendedPlan
	plansByID    map[string]RecommendedPlan
	themes       map[string]Theme
	themeList    []Theme
	avatars      []Avatar
}

// New builds the catalog and its indexes from the seed data
func New() (*Catalog, error) {
	c := &Catalog{
		items:        trainingItems,
		itemsByID:    make(map[string]TrainingItem, len(trainingItems)),
		belts:        belts,
		beltsByLevel: make(map[int]Belt, len(belts)),
		achievements: achievements,
		plans:        recommendedPlans,
		plansByID:    make(map[string]RecommendedPlan, len(recommendedPlans)),
		themes:       make(map[string]Theme, len(themes)),
		themeList:    themes,
		avatars:      avatars,
	}

	for _, item := range c.items {
		if _, dup := c.itemsByID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate training item id: %s", item.ID)
		}
		c.itemsByID[item.ID] = item
	}
	for _, b := range c.belts {
		if _, dup := c.beltsByLevel[b.Level]; dup {
			return nil, fmt.Errorf("duplicate belt level: %d", b.Level)
		}
		c.beltsByLevel[b.Level] = b
	}
	for _, p := range c.plans {
		if _, dup := c.plansByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id: %s", p.ID)
		}
		for _, step := range p.Steps() {
			if _, ok := c.itemsByID[step.ExerciseID]; !ok {
				return nil, fmt.Errorf("plan %s references unknown exercise: %s", p.ID, step.ExerciseID)
			}
		}
		c.plansByID[p.ID] = p
	}
	for _, t := range c.themeList {
		c.themes[t.Key] = t
	}

	return c, nil
}

// Item looks up a training item by id
func (c *Catalog) Item(id string) (TrainingItem, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

// Items returns all training items in catalog order
func (c *Catalog) Items() []TrainingItem {
	return c.items
}

// UnlockedItems returns the items available at the given belt level
func (c *Catalog) UnlockedItems(beltLevel int) []TrainingItem {
	var out []TrainingItem
	for _, item := range c.items {
		if item.RequiredBelt <= beltLevel {
			out = append(out, item)
		}
	}
	return out
}

// EligibleChallenges returns the items a daily challenge may be drawn from:
// unlocked at the belt level and worth XP
func (c *Catalog) EligibleChallenges(beltLevel int) []TrainingItem {
	var out []TrainingItem
	for _, item := range c.items {
		if item.RequiredBelt <= beltLevel && item.XP > 0 {
			out = append(out, item)
		}
	}
	return out
}

// BeltByLevel returns the belt for a level, falling back to the first belt
// for unknown levels
func (c *Catalog) BeltByLevel(level int) Belt {
	if b, ok := c.beltsByLevel[level]; ok {
		return b
	}
	return c.belts[0]
}

// HasBelt reports whether a belt exists at the given level
func (c *Catalog) HasBelt(level int) bool {
	_, ok := c.beltsByLevel[level]
	return ok
}

// Belts returns the full progression ordered by level
func (c *Catalog) Belts() []Belt {
	return c.belts
}

// Achievements returns every achievement rule
func (c *Catalog) Achievements() []Achievement {
	return c.achievements
}

// Plan looks up a recommended plan by id
func (c *Catalog) Plan(id string) (RecommendedPlan, bool) {
	p, ok := c.plansByID[id]
	return p, ok
}

// Plans returns all recommended plans
func (c *Catalog) Plans() []RecommendedPlan {
	return c.plans
}

// Theme looks up a theme by key
func (c *Catalog) Theme(key string) (Theme, bool) {
	t, ok := c.themes[key]
	return t, ok
}

// Themes returns the full palette
func (c *Catalog) Themes() []Theme {
	return c.themeList
}

// Avatars returns the selectable avatars
func (c *Catalog) Avatars() []Avatar {
	return c.avatars
}
