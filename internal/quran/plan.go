// Package quran computes reading targets: a static full-period schedule and a
// per-day adaptive allocation that redistributes shortfall or surplus across
// the remaining days. All functions are pure.
package quran

import (
	"github.com/ohamdan/fanous/internal/constants"
	"github.com/ohamdan/fanous/internal/models"
)

// ScheduleDay is one entry of the static full-period projection.
type ScheduleDay struct {
	Day          int `json:"day"`
	FromPage     int `json:"fromPage"`
	ToPage       int `json:"toPage"`
	DailyPages   int `json:"dailyPages"`
	KhatmaNumber int `json:"khatmaNumber"`
}

// Allocation is an adaptive per-day target. FromPage is 0 when nothing is
// left to read.
type Allocation struct {
	TargetPages int
	FromPage    int
	ToPage      int
}

// Schedule computes the fixed 30-day projection for the given number of full
// read-throughs. It ignores actual reading behavior; see Allocate for the
// adaptive version.
func Schedule(targetCompletions int) []ScheduleDay {
	if targetCompletions < 1 {
		targetCompletions = 1
	}

	totalPages := constants.QuranTotalPages
	dailyPages := ceilDiv(totalPages*targetCompletions, constants.RamadanDays)

	schedule := make([]ScheduleDay, 0, constants.RamadanDays)
	for day := 1; day <= constants.RamadanDays; day++ {
		startPage := (day-1)*dailyPages%totalPages + 1
		endPage := startPage + dailyPages - 1
		if endPage > totalPages {
			endPage = totalPages
		}
		schedule = append(schedule, ScheduleDay{
			Day:          day,
			FromPage:     startPage,
			ToPage:       endPage,
			DailyPages:   dailyPages,
			KhatmaNumber: (day-1)*dailyPages/totalPages + 1,
		})
	}

	return schedule
}

// Allocate computes the reading target for dayNumber from the full history of
// prior days. Over- and under-reading on earlier days is redistributed evenly
// across the days that remain. Must be recomputed whenever the goal changes or
// a day's record is freshly created; never cache the result.
func Allocate(logs map[string]models.DailyLog, dayNumber int, goal models.QuranGoal) Allocation {
	totalGoalPages := constants.QuranTotalPages * goal.TargetCompletions

	previousReadPages := 0
	for _, l := range logs {
		if l.DayNumber < dayNumber {
			previousReadPages += l.Quran.PagesRead
		}
	}

	remainingPages := totalGoalPages - previousReadPages
	if remainingPages < 0 {
		remainingPages = 0
	}
	remainingDays := constants.RamadanDays - dayNumber + 1
	if remainingDays < 1 {
		remainingDays = 1
	}

	targetPages := 0
	if remainingPages > 0 {
		targetPages = ceilDiv(remainingPages, remainingDays)
		if targetPages < 1 {
			targetPages = 1
		}
	}

	span := targetPages
	if span < 1 {
		span = 1
	}
	fromAbsolute := previousReadPages + 1
	toAbsolute := previousReadPages + span
	if toAbsolute > totalGoalPages {
		toAbsolute = totalGoalPages
	}

	fromPage := 0
	if fromAbsolute <= totalGoalPages {
		fromPage = wrapPage(fromAbsolute)
	}
	toPage := constants.QuranTotalPages
	if toAbsolute <= totalGoalPages {
		if toAbsolute < fromAbsolute {
			toAbsolute = fromAbsolute
		}
		toPage = wrapPage(toAbsolute)
	}

	return Allocation{TargetPages: targetPages, FromPage: fromPage, ToPage: toPage}
}

// wrapPage maps an absolute cumulative page position (1-based, possibly
// spanning several read-throughs) into the 1..604 page range of one mushaf.
func wrapPage(absolute int) int {
	return (absolute-1)%constants.QuranTotalPages + 1
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
