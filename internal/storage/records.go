package storage

import (
	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/quran"
)

// GetOrCreateLog returns the record for date, creating it on first access.
//
// A new record is seeded from the current goal and then given a dynamic
// allocation computed from all prior reading. An existing record whose
// reading has not started (PagesRead == 0) gets its target refreshed the same
// way, so a goal change retroactively corrects untouched days. Days where
// reading has begun keep their original target; that freeze is intentional.
func GetOrCreateLog(p Provider, date string, dayNumber int) (models.DailyLog, error) {
	logs, err := p.GetAllLogs()
	if err != nil {
		return models.DailyLog{}, err
	}
	goal, err := p.GetGoal()
	if err != nil {
		return models.DailyLog{}, err
	}

	if existing, ok := logs[date]; ok {
		if existing.Quran.PagesRead != 0 {
			return existing, nil
		}
		applyAllocation(&existing, logs, dayNumber, goal)
		if err := p.SaveLog(existing); err != nil {
			return models.DailyLog{}, err
		}
		return existing, nil
	}

	log := newSeededLog(date, dayNumber, goal)
	applyAllocation(&log, logs, dayNumber, goal)
	if err := p.SaveLog(log); err != nil {
		return models.DailyLog{}, err
	}
	return log, nil
}

// applyAllocation overwrites the record's reading target with a fresh dynamic
// allocation. Completed is reset to false here rather than recomputed: a
// refreshed target of 0 must not mark an untouched day as already done.
func applyAllocation(log *models.DailyLog, logs map[string]models.DailyLog, dayNumber int, goal models.QuranGoal) {
	alloc := quran.Allocate(logs, dayNumber, goal)
	log.Quran.TargetPages = alloc.TargetPages
	log.Quran.FromPage = alloc.FromPage
	log.Quran.ToPage = alloc.ToPage
	log.Quran.Completed = false
}

func newSeededLog(date string, dayNumber int, goal models.QuranGoal) models.DailyLog {
	target, from, to := goal.DailyPages, 1, 20
	for _, d := range quran.Schedule(goal.TargetCompletions) {
		if d.Day == dayNumber {
			target, from, to = d.DailyPages, d.FromPage, d.ToPage
			break
		}
	}
	return models.NewDailyLog(date, dayNumber, target, from, to)
}
