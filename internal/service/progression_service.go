package service

import (
	"math/rand"
	"time"

	"wingtrack/internal/catalog"
	"wingtrack/internal/models"
	"wingtrack/internal/validation"
)

// ProgressionService owns XP accounting, the history ledger, daily
// challenge rotation, achievement evaluation and belt promotion
type ProgressionService struct {
	profiles *ProfileService
	catalog  *catalog.Catalog
	now      func() time.Time
	pick     func(n int) int
}

// NewProgressionService creates a new progression service
func NewProgressionService(profiles *ProfileService, cat *catalog.Catalog) *ProgressionService {
	return &ProgressionService{
		profiles: profiles,
		catalog:  cat,
		now:      time.Now,
		pick:     rand.Intn,
	}
}

// AddXP credits earned XP, merges it into today's ledger entry and bumps
// the exercise's completion count. Non-positive amounts are a no-op.
// Duration accounting is the countdown engine's job, not this one's.
func (s *ProgressionService) AddXP(amount int, exerciseID string) error {
	if amount <= 0 {
		return nil
	}
	return s.profiles.Update(func(p *models.Profile) error {
		p.XP += amount

		today := models.DateKey(s.now())
		merged := false
		for i := range p.History {
			if p.History[i].Date == today {
				p.History[i].XPGained += amount
				merged = true
				break
			}
		}
		if !merged {
			p.History = append(p.History, models.HistoryEntry{Date: today, XPGained: amount})
		}

		if exerciseID != "" {
			stat := p.TrainingStats[exerciseID]
			if stat == nil {
				stat = &models.TrainingStat{}
				p.TrainingStats[exerciseID] = stat
			}
			stat.Count++
		}

		s.applyAchievements(p)
		return nil
	})
}

// CheckDailyChallenge rotates the daily challenge when its date is stale.
// Rotation happens exactly once per calendar day; a second call on the
// same day leaves the stored pick untouched.
func (s *ProgressionService) CheckDailyChallenge() error {
	return s.profiles.Update(func(p *models.Profile) error {
		today := models.DateKey(s.now())
		if p.Daily.Date == today {
			return ErrNoChange
		}

		yesterday := models.DateKey(s.now().AddDate(0, 0, -1))
		if p.Daily.Date == yesterday && !p.Daily.Completed {
			p.Streak = 0
		}

		eligible := s.catalog.EligibleChallenges(p.UnlockedBeltLevel)
		challengeID := ""
		if len(eligible) > 0 {
			challengeID = eligible[s.pick(len(eligible))].ID
		}
		p.Daily = models.DailyChallenge{Date: today, ChallengeID: challengeID, Completed: false}
		return nil
	})
}

// CompleteChallenge marks today's challenge done and extends the streak
// when the finished exercise is the challenged one. At most once per day.
func (s *ProgressionService) CompleteChallenge(exerciseID string) error {
	return s.profiles.Update(func(p *models.Profile) error {
		today := models.DateKey(s.now())
		if p.Daily.Date != today || p.Daily.ChallengeID != exerciseID || p.Daily.Completed {
			return ErrNoChange
		}
		p.Daily.Completed = true
		p.Streak++
		s.applyAchievements(p)
		return nil
	})
}

// ApplyPromotion advances the unlocked belt after code verification.
// Promotion is strictly forward and requires the target belt's XP
// threshold to already be met.
func (s *ProgressionService) ApplyPromotion(targetLevel int) error {
	return s.profiles.Update(func(p *models.Profile) error {
		if !s.catalog.HasBelt(targetLevel) {
			return validation.ValidationError{Field: "beltLevel", Message: "unknown belt level"}
		}
		if targetLevel <= p.UnlockedBeltLevel {
			return validation.ValidationError{Field: "beltLevel", Message: "promotion must advance the belt level"}
		}
		belt := s.catalog.BeltByLevel(targetLevel)
		if p.XP < belt.MinXP {
			return validation.ValidationError{Field: "beltLevel", Message: "not enough XP for " + belt.Name}
		}

		p.UnlockedBeltLevel = targetLevel
		p.NewContent = models.NewContentFlags{Skill: true, Belts: true}
		s.applyAchievements(p)
		return nil
	})
}

// SetTheme selects a theme from the fixed palette
func (s *ProgressionService) SetTheme(key string) error {
	if _, ok := s.catalog.Theme(key); !ok {
		return validation.ValidationError{Field: "theme", Message: "unknown theme: " + key}
	}
	return s.profiles.Update(func(p *models.Profile) error {
		if p.Theme == key {
			return ErrNoChange
		}
		p.Theme = key
		return nil
	})
}

// VisitSection clears the new-content flag for a section on first visit.
// Visiting a section with nothing new is a silent no-op.
func (s *ProgressionService) VisitSection(section string) error {
	return s.profiles.Update(func(p *models.Profile) error {
		switch section {
		case "skill":
			if !p.NewContent.Skill {
				return ErrNoChange
			}
			p.NewContent.Skill = false
		case "belts":
			if !p.NewContent.Belts {
				return ErrNoChange
			}
			p.NewContent.Belts = false
		default:
			return ErrNoChange
		}
		return nil
	})
}

// applyAchievements unions newly qualified achievement keys into the
// unlocked set. Evaluation is a pure predicate over the profile, so it is
// idempotent and never revokes. Caller holds the profile lock.
func (s *ProgressionService) applyAchievements(p *models.Profile) {
	for _, rule := range s.catalog.Achievements() {
		if p.HasAchievement(rule.Key) {
			continue
		}
		if metricValue(p, rule.Metric) >= rule.Threshold {
			p.Achievements = append(p.Achievements, rule.Key)
		}
	}
}

func metricValue(p *models.Profile, metric string) int {
	switch metric {
	case catalog.MetricXP:
		return p.XP
	case catalog.MetricCompletions:
		return p.TotalCompletions()
	case catalog.MetricDuration:
		return p.TotalTrainingSeconds()
	case catalog.MetricStreak:
		return p.Streak
	case catalog.MetricBelt:
		return p.UnlockedBeltLevel
	default:
		return 0
	}
}
