// Package progress derives completion scores, streaks, and aggregate totals
// from daily records. Everything here is a pure function over snapshots; the
// same record always yields the same score.
package progress

import (
	"math"
	"sort"

	"github.com/ohamdan/fanous/internal/constants"
	"github.com/ohamdan/fanous/internal/models"
)

// DayScore returns the weighted completion percentage for one record, an
// integer in [0, 100]. Streaks, heatmaps, and trend charts all derive from
// this value, so the weights are fixed constants.
func DayScore(log models.DailyLog) int {
	completed := 0

	if log.Fasting.Completed {
		completed += constants.FastingWeight
	}

	for _, name := range models.PrayerNames {
		if log.Prayers.Get(name) {
			completed += constants.PrayerSlotWeight
		}
	}

	if log.Quran.Completed || log.Quran.PagesRead >= log.Quran.TargetPages {
		completed += constants.QuranWeight
	}

	if log.Azkar.Morning {
		completed++
	}
	if log.Azkar.Evening {
		completed++
	}

	return int(math.Round(float64(completed) / float64(constants.TotalDayWeight) * 100))
}

// Streaks returns the current and longest consecutive-day streaks.
// todayDayNumber must be the day number fixed at process start, never the
// currently viewed day. An in-progress today that has not reached the
// threshold yet does not break the current streak: counting starts from the
// previous day instead.
func Streaks(logs map[string]models.DailyLog, todayDayNumber int) (current, longest int) {
	achieved := make(map[int]bool, len(logs))
	for _, log := range logs {
		if DayScore(log) >= constants.AchievedThreshold {
			achieved[log.DayNumber] = true
		}
	}

	startDay := todayDayNumber
	if !achieved[startDay] {
		startDay = todayDayNumber - 1
	}
	for day := startDay; day >= 1; day-- {
		if !achieved[day] {
			break
		}
		current++
	}

	days := make([]int, 0, len(achieved))
	for day := range achieved {
		days = append(days, day)
	}
	sort.Ints(days)

	running := 0
	previous := -1
	for _, day := range days {
		if day == previous+1 {
			running++
		} else {
			running = 1
		}
		if running > longest {
			longest = running
		}
		previous = day
	}

	return current, longest
}

// PrayerBreakdown counts completed days per prayer slot.
type PrayerBreakdown struct {
	Fajr     int `json:"fajr"`
	Dhuhr    int `json:"dhuhr"`
	Asr      int `json:"asr"`
	Maghrib  int `json:"maghrib"`
	Isha     int `json:"isha"`
	Taraweeh int `json:"taraweeh"`
}

// Totals aggregates all records into summary statistics.
type Totals struct {
	DaysTracked     int             `json:"totalDaysTracked"`
	FastingDays     int             `json:"fastingDays"`
	TotalPrayers    int             `json:"totalPrayers"`
	QuranPages      int             `json:"totalQuranPages"`
	MorningAzkar    int             `json:"morningAzkar"`
	EveningAzkar    int             `json:"eveningAzkar"`
	CompletedExtras int             `json:"totalExtras"`
	Prayers         PrayerBreakdown `json:"prayerBreakdown"`
}

// Summarize computes Totals over all records.
func Summarize(logs map[string]models.DailyLog) Totals {
	t := Totals{DaysTracked: len(logs)}

	for _, log := range logs {
		if log.Fasting.Completed {
			t.FastingDays++
		}
		t.QuranPages += log.Quran.PagesRead
		if log.Azkar.Morning {
			t.MorningAzkar++
		}
		if log.Azkar.Evening {
			t.EveningAzkar++
		}
		for _, e := range log.Extras {
			if e.Completed {
				t.CompletedExtras++
			}
		}

		p := log.Prayers
		for _, done := range []struct {
			ok bool
			n  *int
		}{
			{p.Fajr, &t.Prayers.Fajr},
			{p.Dhuhr, &t.Prayers.Dhuhr},
			{p.Asr, &t.Prayers.Asr},
			{p.Maghrib, &t.Prayers.Maghrib},
			{p.Isha, &t.Prayers.Isha},
			{p.Taraweeh, &t.Prayers.Taraweeh},
		} {
			if done.ok {
				*done.n++
				t.TotalPrayers++
			}
		}
	}

	return t
}
