package service

import (
	"math"

	"wingtrack/internal/models"
)

// DayXP is one bar of the trailing-week chart
type DayXP struct {
	Date string `json:"date"`
	XP   int    `json:"xp"`
}

// StatsSummary aggregates the profile's training statistics for display
type StatsSummary struct {
	TotalXP              int     `json:"totalXp"`
	TotalTrainingMinutes int     `json:"totalTrainingMinutes"`
	FavoriteExercise     string  `json:"favoriteExercise"`
	Streak               int     `json:"streak"`
	Last7Days            []DayXP `json:"last7Days"`
}

// Stats builds the statistics summary: totals, the most-completed
// exercise and XP per day for the trailing 7 calendar days
func (s *ProgressionService) Stats() (*StatsSummary, error) {
	var summary *StatsSummary
	err := s.profiles.View(func(p *models.Profile) error {
		summary = &StatsSummary{
			TotalXP:              p.XP,
			TotalTrainingMinutes: int(math.Round(float64(p.TotalTrainingSeconds()) / 60)),
			FavoriteExercise:     s.favoriteExercise(p),
			Streak:               p.Streak,
			Last7Days:            s.trailingWeek(p),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *ProgressionService) favoriteExercise(p *models.Profile) string {
	bestID := ""
	bestCount := 0
	for id, stat := range p.TrainingStats {
		if stat.Count == 0 {
			continue
		}
		// ties break on id so map order cannot flip the result
		if stat.Count > bestCount || (stat.Count == bestCount && id < bestID) {
			bestID = id
			bestCount = stat.Count
		}
	}
	if bestID == "" {
		return "-"
	}
	if item, ok := s.catalog.Item(bestID); ok {
		return item.Title
	}
	return bestID
}

func (s *ProgressionService) trailingWeek(p *models.Profile) []DayXP {
	byDate := make(map[string]int, len(p.History))
	for _, entry := range p.History {
		byDate[entry.Date] = entry.XPGained
	}

	days := make([]DayXP, 0, 7)
	for i := 6; i >= 0; i-- {
		date := models.DateKey(s.now().AddDate(0, 0, -i))
		days = append(days, DayXP{Date: date, XP: byDate[date]})
	}
	return days
}
