package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/migration"
	"github.com/ohamdan/fanous/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// app_state keys.
const (
	stateGoal      = "quran_goal"
	stateProfile   = "user_profile"
	stateOnboarded = "onboarded"
	stateStartDate = "start_date"
	stateGuestMode = "guest_mode"
	stateAuthToken = "auth_token"

	prayerCachePrefix = "prayer_cache:"
)

// SQLiteStore persists daily records as whole JSON documents keyed by date,
// and everything else in a key-value table.
type SQLiteStore struct {
	path  string
	db    *sql.DB
	token string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func migrationsFS() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrationsFS())
	if _, err := runner.Apply(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return s.loadToken()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'fanous init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrationsFS())
	if err := runner.ValidateVersion(); err != nil {
		// A behind-schema database is upgraded in place; only a
		// newer-than-supported schema is fatal.
		if _, applyErr := runner.Apply(); applyErr != nil {
			return applyErr
		}
	}

	return s.loadToken()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) loadToken() error {
	token, ok, err := s.getState(stateAuthToken)
	if err != nil {
		return err
	}
	if ok {
		s.token = token
	}
	return nil
}

func (s *SQLiteStore) getState(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) setState(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)", key, value)
	return err
}

func (s *SQLiteStore) deleteState(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM app_state WHERE key = ?", key)
	return err
}

func (s *SQLiteStore) GetAllLogs() (map[string]models.DailyLog, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT date, data FROM daily_logs")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make(map[string]models.DailyLog)
	for rows.Next() {
		var date, data string
		if err := rows.Scan(&date, &data); err != nil {
			return nil, err
		}
		var log models.DailyLog
		if err := json.Unmarshal([]byte(data), &log); err != nil {
			// Unreadable rows are treated as absent; the record will be
			// recreated with defaults on next access.
			continue
		}
		logs[date] = log
	}

	return logs, rows.Err()
}

func (s *SQLiteStore) GetLog(date string) (models.DailyLog, bool, error) {
	if s.db == nil {
		return models.DailyLog{}, false, fmt.Errorf("storage not loaded")
	}

	var data string
	err := s.db.QueryRow("SELECT data FROM daily_logs WHERE date = ?", date).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyLog{}, false, nil
	}
	if err != nil {
		return models.DailyLog{}, false, err
	}

	var log models.DailyLog
	if err := json.Unmarshal([]byte(data), &log); err != nil {
		return models.DailyLog{}, false, nil
	}
	return log, true, nil
}

func (s *SQLiteStore) SaveLog(log models.DailyLog) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO daily_logs (date, day_number, data) VALUES (?, ?, ?)",
		log.Date, log.DayNumber, string(data),
	)
	return err
}

func (s *SQLiteStore) GetGoal() (models.QuranGoal, error) {
	value, ok, err := s.getState(stateGoal)
	if err != nil {
		return models.QuranGoal{}, err
	}
	if !ok {
		return models.DefaultQuranGoal(), nil
	}

	var goal models.QuranGoal
	if err := json.Unmarshal([]byte(value), &goal); err != nil {
		return models.DefaultQuranGoal(), nil
	}
	return goal, nil
}

func (s *SQLiteStore) SaveGoal(goal models.QuranGoal) error {
	data, err := json.Marshal(goal)
	if err != nil {
		return fmt.Errorf("failed to serialize goal: %w", err)
	}
	return s.setState(stateGoal, string(data))
}

func (s *SQLiteStore) GetProfile() (*models.UserProfile, error) {
	value, ok, err := s.getState(stateProfile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(value), &profile); err != nil {
		return nil, nil
	}
	return &profile, nil
}

func (s *SQLiteStore) SaveProfile(profile models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	return s.setState(stateProfile, string(data))
}

func (s *SQLiteStore) IsOnboarded() (bool, error) {
	value, ok, err := s.getState(stateOnboarded)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

func (s *SQLiteStore) SetOnboarded(v bool) error {
	if !v {
		return s.deleteState(stateOnboarded)
	}
	return s.setState(stateOnboarded, "true")
}

func (s *SQLiteStore) StartDate() (string, error) {
	value, ok, err := s.getState(stateStartDate)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return hijri.DefaultStartDate, nil
	}
	return value, nil
}

func (s *SQLiteStore) SetStartDate(date string) error {
	return s.setState(stateStartDate, date)
}

func (s *SQLiteStore) GuestMode() (bool, error) {
	value, ok, err := s.getState(stateGuestMode)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

func (s *SQLiteStore) SetGuestMode(v bool) error {
	if !v {
		return s.deleteState(stateGuestMode)
	}
	return s.setState(stateGuestMode, "true")
}

func (s *SQLiteStore) VoluntaryFast(date string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	var found string
	err := s.db.QueryRow("SELECT date FROM voluntary_fasts WHERE date = ?", date).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) SetVoluntaryFast(date string, fasted bool) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if fasted {
		_, err := s.db.Exec("INSERT OR REPLACE INTO voluntary_fasts (date) VALUES (?)", date)
		return err
	}
	_, err := s.db.Exec("DELETE FROM voluntary_fasts WHERE date = ?", date)
	return err
}

func (s *SQLiteStore) Token() string {
	return s.token
}

func (s *SQLiteStore) SetToken(token string) error {
	if token == "" {
		if err := s.deleteState(stateAuthToken); err != nil {
			return err
		}
		s.token = ""
		return nil
	}
	if err := s.setState(stateAuthToken, token); err != nil {
		return err
	}
	s.token = token
	return nil
}

func (s *SQLiteStore) PrayerCache(key string) ([]byte, bool, error) {
	value, ok, err := s.getState(prayerCachePrefix + key)
	if err != nil || !ok {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) SetPrayerCache(key string, value []byte) error {
	return s.setState(prayerCachePrefix+key, string(value))
}

func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, stmt := range []string{
		"DELETE FROM daily_logs",
		"DELETE FROM voluntary_fasts",
		"DELETE FROM app_state",
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	s.token = ""
	return nil
}

func (s *SQLiteStore) ConfigPath() string {
	return s.path
}

// DB exposes the underlying handle for diagnostics.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// MigrationsFS exposes the embedded migrations for diagnostics.
func MigrationsFS() fs.FS {
	return migrationsFS()
}
