// Package hijri maps calendar dates to period-relative day numbers and to a
// Hijri month/day label for display. All functions are total: out-of-range
// input produces sentinel or fallback values, never errors.
package hijri

import (
	"time"

	"github.com/ohamdan/fanous/internal/constants"
)

const dateLayout = "2006-01-02"

// DefaultStartDate is the first day of Ramadan 1447 AH.
const DefaultStartDate = "2026-02-19"

// Month lengths after Ramadan 1447 AH. Ramadan itself is days 1-30 and is not
// part of this table.
var monthsAfterRamadan = []struct {
	nameEn string
	nameAr string
	days   int
}{
	{"Shawwal", "شوال", 29},
	{"Dhul Qi'dah", "ذو القعدة", 30},
	{"Dhul Hijjah", "ذو الحجة", 30},
	{"Muharram", "محرم", 30},
	{"Safar", "صفر", 29},
	{"Rabi' al-Awwal", "ربيع الأول", 30},
	{"Rabi' al-Thani", "ربيع الآخر", 29},
	{"Jumada al-Ula", "جمادى الأولى", 30},
	{"Jumada al-Thani", "جمادى الآخرة", 29},
	{"Sha'ban", "شعبان", 30},
	{"Ramadan", "رمضان", 30},
}

// HijriDate is a display label, not a full calendar conversion.
type HijriDate struct {
	MonthNameEn string
	MonthNameAr string
	DayInMonth  int
	DaysInMonth int
}

// DayNumber returns the 1-based offset of date from periodStart. Zero or
// negative means the date is before the period. Unparseable input yields 0.
// There is no upper clamp here; callers enforce the tracking horizon.
func DayNumber(date, periodStart string) int {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	start, err := time.Parse(dateLayout, periodStart)
	if err != nil {
		return 0
	}
	return int(d.Sub(start).Hours()/24) + 1
}

// IsRamadan reports whether the day number falls within the fasting period.
func IsRamadan(dayNumber int) bool {
	return dayNumber >= 1 && dayNumber <= constants.RamadanDays
}

// IsTrackable reports whether the date is within the tracking horizon.
func IsTrackable(date, periodStart string) bool {
	day := DayNumber(date, periodStart)
	return day >= 1 && day <= constants.MaxTrackingDays
}

// Date converts a day number to a Hijri month + day. Days 1-30 are Ramadan,
// days 31+ walk the fixed month table, and anything beyond the table falls
// back to a generic "Day N" label.
func Date(dayNumber int) HijriDate {
	if dayNumber <= constants.RamadanDays {
		return HijriDate{"Ramadan", "رمضان", dayNumber, constants.RamadanDays}
	}

	remaining := dayNumber - constants.RamadanDays
	for _, m := range monthsAfterRamadan {
		if remaining <= m.days {
			return HijriDate{m.nameEn, m.nameAr, remaining, m.days}
		}
		remaining -= m.days
	}

	return HijriDate{"Day", "يوم", dayNumber, 30}
}

// DateOf returns t formatted as a storage key (YYYY-MM-DD).
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}

// Today returns the current date formatted as a storage key.
func Today() string {
	return DateOf(time.Now())
}

// AddDays shifts a YYYY-MM-DD date by n days. Unparseable input is returned
// unchanged.
func AddDays(date string, n int) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, n).Format(dateLayout)
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD string.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}
