package constants

const (
	// QuranTotalPages is the page count of the standard Madani mushaf.
	// The remote API and the reading plan both assume this exact value.
	QuranTotalPages = 604

	// RamadanDays is the length of the observance period.
	RamadanDays = 30

	// MaxTrackingDays bounds how far past the period start a date can still
	// be tracked (post-Ramadan voluntary fasting, Shawwal, etc.).
	MaxTrackingDays = 365

	// AchievedThreshold is the day-progress percentage at or above which a
	// day counts toward streaks.
	AchievedThreshold = 40
)

// Progress weights. One point per prayer slot, one for fasting, one for the
// reading target, one each for morning and evening azkar.
const (
	FastingWeight     = 1
	PrayerSlotWeight  = 1
	PrayerSlots       = 6
	QuranWeight       = 1
	AzkarWeight       = 2
	TotalDayWeight    = FastingWeight + PrayerSlotWeight*PrayerSlots + QuranWeight + AzkarWeight
)

func init() {
	// Runtime validation: the score denominator must stay at 10, otherwise
	// every stored heatmap/streak derivation changes meaning.
	if TotalDayWeight != 10 {
		panic("progress weights must sum to 10")
	}
}
