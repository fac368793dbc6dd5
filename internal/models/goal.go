package models

import "github.com/ohamdan/fanous/internal/constants"

// QuranGoal is the single global reading goal. DailyPages is derived; the only
// write path is NewQuranGoal so it can never drift from the other fields.
type QuranGoal struct {
	TargetCompletions int `json:"targetCompletions"`
	TotalPages        int `json:"totalPages"`
	TotalDays         int `json:"totalDays"`
	DailyPages        int `json:"dailyPages"`
}

// NewQuranGoal builds a goal for the given number of full read-throughs.
// Values below 1 are clamped to 1.
func NewQuranGoal(targetCompletions int) QuranGoal {
	if targetCompletions < 1 {
		targetCompletions = 1
	}
	return QuranGoal{
		TargetCompletions: targetCompletions,
		TotalPages:        constants.QuranTotalPages,
		TotalDays:         constants.RamadanDays,
		DailyPages:        ceilDiv(constants.QuranTotalPages*targetCompletions, constants.RamadanDays),
	}
}

// DefaultQuranGoal is one complete read-through over the period.
func DefaultQuranGoal() QuranGoal {
	return NewQuranGoal(1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
