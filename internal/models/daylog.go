package models

import (
	"github.com/google/uuid"

	"github.com/ohamdan/fanous/internal/constants"
)

// PrayerStatus tracks the five obligatory prayers plus taraweeh.
type PrayerStatus struct {
	Fajr     bool `json:"fajr"`
	Dhuhr    bool `json:"dhuhr"`
	Asr      bool `json:"asr"`
	Maghrib  bool `json:"maghrib"`
	Isha     bool `json:"isha"`
	Taraweeh bool `json:"taraweeh"`
}

// PrayerNames lists the slots in canonical order.
var PrayerNames = []string{"fajr", "dhuhr", "asr", "maghrib", "isha", "taraweeh"}

// Get returns the slot value by name, false for unknown names.
func (p PrayerStatus) Get(name string) bool {
	switch name {
	case "fajr":
		return p.Fajr
	case "dhuhr":
		return p.Dhuhr
	case "asr":
		return p.Asr
	case "maghrib":
		return p.Maghrib
	case "isha":
		return p.Isha
	case "taraweeh":
		return p.Taraweeh
	}
	return false
}

// Set updates the slot by name. Returns false for unknown names.
func (p *PrayerStatus) Set(name string, value bool) bool {
	switch name {
	case "fajr":
		p.Fajr = value
	case "dhuhr":
		p.Dhuhr = value
	case "asr":
		p.Asr = value
	case "maghrib":
		p.Maghrib = value
	case "isha":
		p.Isha = value
	case "taraweeh":
		p.Taraweeh = value
	default:
		return false
	}
	return true
}

type FastingStatus struct {
	Completed   bool   `json:"completed"`
	PreDawnMeal bool   `json:"preDawnMeal"`
	Notes       string `json:"notes"`
}

type QuranStatus struct {
	PagesRead   int  `json:"pagesRead"`
	TargetPages int  `json:"targetPages"`
	FromPage    int  `json:"fromPage"`
	ToPage      int  `json:"toPage"`
	Completed   bool `json:"completed"`
}

// Recompute restores the derived Completed flag. Every mutation to PagesRead
// or TargetPages must go through here.
func (q *QuranStatus) Recompute() {
	q.Completed = q.PagesRead >= q.TargetPages
}

// SetPagesRead clamps the value into [0, QuranTotalPages] and recomputes the
// Completed flag. Out-of-range input is clamped, never rejected.
func (q *QuranStatus) SetPagesRead(pages int) {
	if pages < 0 {
		pages = 0
	}
	if pages > constants.QuranTotalPages {
		pages = constants.QuranTotalPages
	}
	q.PagesRead = pages
	q.Recompute()
}

type AzkarStatus struct {
	Morning bool `json:"morning"`
	Evening bool `json:"evening"`
}

// ExtraDeed is a free-form good deed. Insertion order is meaningful.
type ExtraDeed struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NewExtraDeed assigns a fresh ID.
func NewExtraDeed(description string) ExtraDeed {
	return ExtraDeed{
		ID:          uuid.NewString(),
		Description: description,
	}
}

// DailyLog is the per-day record aggregating all tracked categories.
// Date (YYYY-MM-DD) is the canonical key and immutable once created.
type DailyLog struct {
	Date      string        `json:"date"`
	DayNumber int           `json:"dayNumber"`
	Fasting   FastingStatus `json:"fasting"`
	Prayers   PrayerStatus  `json:"prayers"`
	Quran     QuranStatus   `json:"quran"`
	Azkar     AzkarStatus   `json:"azkar"`
	Extras    []ExtraDeed   `json:"extras"`
}

// NewDailyLog creates an empty record for a date with a pre-seeded reading
// target. Callers normally overwrite the target with a dynamic allocation
// right after creation.
func NewDailyLog(date string, dayNumber, targetPages, fromPage, toPage int) DailyLog {
	return DailyLog{
		Date:      date,
		DayNumber: dayNumber,
		Quran: QuranStatus{
			TargetPages: targetPages,
			FromPage:    fromPage,
			ToPage:      toPage,
		},
		Extras: []ExtraDeed{},
	}
}

// ToggleExtra flips the completion state of the deed with the given ID.
func (l *DailyLog) ToggleExtra(id string) bool {
	for i := range l.Extras {
		if l.Extras[i].ID == id {
			l.Extras[i].Completed = !l.Extras[i].Completed
			return true
		}
	}
	return false
}

// RemoveExtra deletes the deed with the given ID, preserving order.
func (l *DailyLog) RemoveExtra(id string) bool {
	for i := range l.Extras {
		if l.Extras[i].ID == id {
			l.Extras = append(l.Extras[:i], l.Extras[i+1:]...)
			return true
		}
	}
	return false
}
