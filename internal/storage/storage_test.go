package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ohamdan/fanous/internal/models"
)

func newProviders(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	providers := map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "fanous.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "fanous.db")),
	}
	for name, p := range providers {
		require.NoError(t, p.Init(), "init %s", name)
		t.Cleanup(func() { p.Close() })
	}
	return providers
}

func fullLog() models.DailyLog {
	log := models.NewDailyLog("2026-02-19", 1, 21, 1, 21)
	log.Fasting.Completed = true
	log.Fasting.PreDawnMeal = true
	log.Fasting.Notes = "light suhoor"
	log.Prayers.Fajr = true
	log.Prayers.Taraweeh = true
	log.Quran.SetPagesRead(25)
	log.Azkar.Morning = true
	log.Extras = []models.ExtraDeed{
		{ID: "a1", Description: "charity", Completed: true},
		{ID: "b2", Description: "visit family", Completed: false},
		{ID: "c3", Description: "dua list", Completed: true},
	}
	return log
}

func TestLogRoundTrip(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			want := fullLog()
			require.NoError(t, p.SaveLog(want))

			all, err := p.GetAllLogs()
			require.NoError(t, err)
			require.Len(t, all, 1)
			require.Equal(t, want, all["2026-02-19"])

			got, ok, err := p.GetLog("2026-02-19")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, want, got)
		})
	}
}

func TestGetLogMissing(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := p.GetLog("2026-03-01")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestGoalDefaultsToOneCompletion(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			goal, err := p.GetGoal()
			require.NoError(t, err)
			require.Equal(t, models.DefaultQuranGoal(), goal)

			require.NoError(t, p.SaveGoal(models.NewQuranGoal(3)))
			goal, err = p.GetGoal()
			require.NoError(t, err)
			require.Equal(t, 3, goal.TargetCompletions)
			require.Equal(t, 61, goal.DailyPages)
		})
	}
}

func TestProfileRoundTrip(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			profile, err := p.GetProfile()
			require.NoError(t, err)
			require.Nil(t, profile)

			want := models.UserProfile{Name: "Omar", Email: "omar@example.com", PeriodStartDate: "2026-02-19"}
			require.NoError(t, p.SaveProfile(want))

			profile, err = p.GetProfile()
			require.NoError(t, err)
			require.NotNil(t, profile)
			require.Equal(t, want, *profile)
		})
	}
}

func TestFlagsAndSettings(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			onboarded, err := p.IsOnboarded()
			require.NoError(t, err)
			require.False(t, onboarded)
			require.NoError(t, p.SetOnboarded(true))
			onboarded, err = p.IsOnboarded()
			require.NoError(t, err)
			require.True(t, onboarded)

			start, err := p.StartDate()
			require.NoError(t, err)
			require.Equal(t, "2026-02-19", start)
			require.NoError(t, p.SetStartDate("2027-02-08"))
			start, err = p.StartDate()
			require.NoError(t, err)
			require.Equal(t, "2027-02-08", start)

			guest, err := p.GuestMode()
			require.NoError(t, err)
			require.False(t, guest)
			require.NoError(t, p.SetGuestMode(true))
			guest, err = p.GuestMode()
			require.NoError(t, err)
			require.True(t, guest)
		})
	}
}

func TestVoluntaryFasts(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			fasted, err := p.VoluntaryFast("2026-04-01")
			require.NoError(t, err)
			require.False(t, fasted)

			require.NoError(t, p.SetVoluntaryFast("2026-04-01", true))
			fasted, err = p.VoluntaryFast("2026-04-01")
			require.NoError(t, err)
			require.True(t, fasted)

			require.NoError(t, p.SetVoluntaryFast("2026-04-01", false))
			fasted, err = p.VoluntaryFast("2026-04-01")
			require.NoError(t, err)
			require.False(t, fasted)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			require.Empty(t, p.Token())
			require.NoError(t, p.SetToken("secret"))
			require.Equal(t, "secret", p.Token())
			require.NoError(t, p.SetToken(""))
			require.Empty(t, p.Token())
		})
	}
}

func TestPrayerCache(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := p.PrayerCache("2026-02-19")
			require.NoError(t, err)
			require.False(t, ok)

			payload := []byte(`{"fajr":"05:12"}`)
			require.NoError(t, p.SetPrayerCache("2026-02-19", payload))
			got, ok, err := p.PrayerCache("2026-02-19")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, payload, got)
		})
	}
}

func TestClearWipesEverything(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.SaveLog(fullLog()))
			require.NoError(t, p.SaveGoal(models.NewQuranGoal(2)))
			require.NoError(t, p.SetOnboarded(true))
			require.NoError(t, p.SetToken("secret"))
			require.NoError(t, p.SetVoluntaryFast("2026-04-01", true))

			require.NoError(t, p.Clear())

			all, err := p.GetAllLogs()
			require.NoError(t, err)
			require.Empty(t, all)

			goal, err := p.GetGoal()
			require.NoError(t, err)
			require.Equal(t, models.DefaultQuranGoal(), goal)

			onboarded, err := p.IsOnboarded()
			require.NoError(t, err)
			require.False(t, onboarded)

			require.Empty(t, p.Token())

			fasted, err := p.VoluntaryFast("2026-04-01")
			require.NoError(t, err)
			require.False(t, fasted)
		})
	}
}

func TestGetOrCreateLogSeedsNewDay(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			log, err := GetOrCreateLog(p, "2026-02-19", 1)
			require.NoError(t, err)
			require.Equal(t, "2026-02-19", log.Date)
			require.Equal(t, 1, log.DayNumber)
			require.Equal(t, 21, log.Quran.TargetPages)
			require.Equal(t, 1, log.Quran.FromPage)
			require.Equal(t, 21, log.Quran.ToPage)
			require.False(t, log.Quran.Completed)

			// Creation persists immediately.
			saved, ok, err := p.GetLog("2026-02-19")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, log, saved)
		})
	}
}

func TestGetOrCreateLogRefreshesUntouchedDay(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			_, err := GetOrCreateLog(p, "2026-02-19", 1)
			require.NoError(t, err)

			// Doubling the goal retroactively corrects a day nobody has
			// read on yet.
			require.NoError(t, p.SaveGoal(models.NewQuranGoal(2)))

			log, err := GetOrCreateLog(p, "2026-02-19", 1)
			require.NoError(t, err)
			require.Equal(t, 41, log.Quran.TargetPages)
			require.Equal(t, 1, log.Quran.FromPage)
			require.Equal(t, 41, log.Quran.ToPage)
			require.False(t, log.Quran.Completed)
		})
	}
}

func TestGetOrCreateLogFreezesStartedDay(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			log, err := GetOrCreateLog(p, "2026-02-19", 1)
			require.NoError(t, err)

			log.Quran.SetPagesRead(10)
			require.NoError(t, p.SaveLog(log))
			require.NoError(t, p.SaveGoal(models.NewQuranGoal(2)))

			got, err := GetOrCreateLog(p, "2026-02-19", 1)
			require.NoError(t, err)
			require.Equal(t, 21, got.Quran.TargetPages)
			require.Equal(t, 10, got.Quran.PagesRead)
		})
	}
}

func TestGetOrCreateLogAllocatesFromHistory(t *testing.T) {
	for name, p := range newProviders(t) {
		t.Run(name, func(t *testing.T) {
			day1, err := GetOrCreateLog(p, "2026-02-19", 1)
			require.NoError(t, err)
			day1.Quran.SetPagesRead(100)
			require.NoError(t, p.SaveLog(day1))

			day2, err := GetOrCreateLog(p, "2026-02-20", 2)
			require.NoError(t, err)
			require.Equal(t, 18, day2.Quran.TargetPages)
			require.Equal(t, 101, day2.Quran.FromPage)
			require.Equal(t, 118, day2.Quran.ToPage)
		})
	}
}

func TestJSONStoreSelfHealsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fanous.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewJSONStore(path)
	require.NoError(t, s.Load())

	all, err := s.GetAllLogs()
	require.NoError(t, err)
	require.Empty(t, all)

	goal, err := s.GetGoal()
	require.NoError(t, err)
	require.Equal(t, models.DefaultQuranGoal(), goal)
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	err := s.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "fanous init")
}

func TestJSONStoreInitRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanous.json")
	require.NoError(t, NewJSONStore(path).Init())
	require.Error(t, NewJSONStore(path).Init())
}

func TestSQLiteStoreSkipsCorruptRows(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "fanous.db"))
	require.NoError(t, s.Init())
	defer s.Close()

	require.NoError(t, s.SaveLog(fullLog()))
	_, err := s.DB().Exec(
		"INSERT INTO daily_logs (date, day_number, data) VALUES (?, ?, ?)",
		"2026-02-20", 2, "{broken",
	)
	require.NoError(t, err)

	all, err := s.GetAllLogs()
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, ok, err := s.GetLog("2026-02-20")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStoreLoadMissingFile(t *testing.T) {
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	err := s.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "fanous init")
}

func TestSQLiteStoreTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fanous.db")
	s := NewSQLiteStore(path)
	require.NoError(t, s.Init())
	require.NoError(t, s.SetToken("secret"))
	require.NoError(t, s.Close())

	reopened := NewSQLiteStore(path)
	require.NoError(t, reopened.Load())
	defer reopened.Close()
	require.Equal(t, "secret", reopened.Token())
}
