package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/models"
)

type fileStore struct {
	Version        int                         `json:"version"`
	Logs           map[string]models.DailyLog  `json:"daily_logs"`
	Goal           *models.QuranGoal           `json:"quran_goal,omitempty"`
	Profile        *models.UserProfile         `json:"user_profile,omitempty"`
	Onboarded      bool                        `json:"onboarded"`
	StartDate      string                      `json:"start_date,omitempty"`
	GuestMode      bool                        `json:"guest_mode"`
	VoluntaryFasts map[string]bool             `json:"voluntary_fasts"`
	AuthToken      string                      `json:"auth_token,omitempty"`
	PrayerCache    map[string]json.RawMessage  `json:"prayer_cache"`
}

// JSONStore keeps everything in a single JSON file, written whole on every
// mutation.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func emptyFileStore() *fileStore {
	return &fileStore{
		Version:        1,
		Logs:           make(map[string]models.DailyLog),
		VoluntaryFasts: make(map[string]bool),
		PrayerCache:    make(map[string]json.RawMessage),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = emptyFileStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'fanous init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = emptyFileStore()
	// Corrupt data is treated as absent: the store self-heals with defaults
	// rather than refusing to start.
	if err := json.Unmarshal(data, s.store); err != nil {
		s.store = emptyFileStore()
		return nil
	}

	if s.store.Logs == nil {
		s.store.Logs = make(map[string]models.DailyLog)
	}
	if s.store.VoluntaryFasts == nil {
		s.store.VoluntaryFasts = make(map[string]bool)
	}
	if s.store.PrayerCache == nil {
		s.store.PrayerCache = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetAllLogs() (map[string]models.DailyLog, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	logs := make(map[string]models.DailyLog, len(s.store.Logs))
	for date, log := range s.store.Logs {
		logs[date] = log
	}
	return logs, nil
}

func (s *JSONStore) GetLog(date string) (models.DailyLog, bool, error) {
	if err := s.loaded(); err != nil {
		return models.DailyLog{}, false, err
	}
	log, ok := s.store.Logs[date]
	return log, ok, nil
}

func (s *JSONStore) SaveLog(log models.DailyLog) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Logs[log.Date] = log
	return s.save()
}

func (s *JSONStore) GetGoal() (models.QuranGoal, error) {
	if err := s.loaded(); err != nil {
		return models.QuranGoal{}, err
	}
	if s.store.Goal == nil {
		return models.DefaultQuranGoal(), nil
	}
	return *s.store.Goal, nil
}

func (s *JSONStore) SaveGoal(goal models.QuranGoal) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Goal = &goal
	return s.save()
}

func (s *JSONStore) GetProfile() (*models.UserProfile, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	if s.store.Profile == nil {
		return nil, nil
	}
	profile := *s.store.Profile
	return &profile, nil
}

func (s *JSONStore) SaveProfile(profile models.UserProfile) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Profile = &profile
	return s.save()
}

func (s *JSONStore) IsOnboarded() (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}
	return s.store.Onboarded, nil
}

func (s *JSONStore) SetOnboarded(v bool) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Onboarded = v
	return s.save()
}

func (s *JSONStore) StartDate() (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	if s.store.StartDate == "" {
		return hijri.DefaultStartDate, nil
	}
	return s.store.StartDate, nil
}

func (s *JSONStore) SetStartDate(date string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.StartDate = date
	return s.save()
}

func (s *JSONStore) GuestMode() (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}
	return s.store.GuestMode, nil
}

func (s *JSONStore) SetGuestMode(v bool) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.GuestMode = v
	return s.save()
}

func (s *JSONStore) VoluntaryFast(date string) (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}
	return s.store.VoluntaryFasts[date], nil
}

func (s *JSONStore) SetVoluntaryFast(date string, fasted bool) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if fasted {
		s.store.VoluntaryFasts[date] = true
	} else {
		delete(s.store.VoluntaryFasts, date)
	}
	return s.save()
}

func (s *JSONStore) Token() string {
	if s.store == nil {
		return ""
	}
	return s.store.AuthToken
}

func (s *JSONStore) SetToken(token string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.AuthToken = token
	return s.save()
}

func (s *JSONStore) PrayerCache(key string) ([]byte, bool, error) {
	if err := s.loaded(); err != nil {
		return nil, false, err
	}
	value, ok := s.store.PrayerCache[key]
	return value, ok, nil
}

func (s *JSONStore) SetPrayerCache(key string, value []byte) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.PrayerCache[key] = json.RawMessage(value)
	return s.save()
}

func (s *JSONStore) Clear() error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store = emptyFileStore()
	return s.save()
}

func (s *JSONStore) ConfigPath() string {
	return s.path
}
