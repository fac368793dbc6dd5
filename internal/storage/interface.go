package storage

import "github.com/ohamdan/fanous/internal/models"

// Provider owns all locally persisted state. Implementations are not safe for
// concurrent use; fanous assumes a single process and a single logical writer.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Daily records
	GetAllLogs() (map[string]models.DailyLog, error)
	GetLog(date string) (models.DailyLog, bool, error)
	SaveLog(models.DailyLog) error

	// Reading goal (global singleton; default is one completion)
	GetGoal() (models.QuranGoal, error)
	SaveGoal(models.QuranGoal) error

	// Profile
	GetProfile() (*models.UserProfile, error)
	SaveProfile(models.UserProfile) error

	// Flags and settings
	IsOnboarded() (bool, error)
	SetOnboarded(bool) error
	StartDate() (string, error)
	SetStartDate(string) error
	GuestMode() (bool, error)
	SetGuestMode(bool) error

	// Post-period voluntary fasting
	VoluntaryFast(date string) (bool, error)
	SetVoluntaryFast(date string, fasted bool) error

	// Auth token (also satisfies remote.TokenStore)
	Token() string
	SetToken(token string) error

	// Cached prayer-time lookups, owned by the prayer-time collaborator but
	// persisted and wiped with everything else.
	PrayerCache(key string) ([]byte, bool, error)
	SetPrayerCache(key string, value []byte) error

	// Clear irreversibly wipes every key owned by this subsystem.
	Clear() error

	// Utils
	ConfigPath() string
}
