// Package prayertimes fetches daily prayer times from the Aladhan API
// (https://aladhan.com/prayer-times-api) and caches them in the local store so
// repeat lookups work offline.
package prayertimes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Aladhan endpoint.
	DefaultBaseURL = "https://api.aladhan.com/v1"

	// calculationMethod 5 is the Egyptian General Authority of Survey.
	calculationMethod = 5

	cacheTTL       = 6 * time.Hour
	requestTimeout = 10 * time.Second

	locationCacheKey = "location"
)

// Cache is the slice of the storage provider this package needs.
type Cache interface {
	PrayerCache(key string) ([]byte, bool, error)
	SetPrayerCache(key string, value []byte) error
}

// Location is a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Times holds one day's prayer times as HH:MM strings.
type Times struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`

	Date     string   `json:"date"`
	Location Location `json:"location"`
}

// NextPrayer names the upcoming prayer and how long until it.
type NextPrayer struct {
	Name      string
	Time      string
	Remaining time.Duration
}

type cacheEntry struct {
	Date      string `json:"date"`
	FetchedAt int64  `json:"timestamp"`
	Data      Times  `json:"data"`
}

type aladhanResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

type Service struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	now        func() time.Time
}

func NewService(cache Cache) *Service {
	return &Service{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
		now:        time.Now,
	}
}

// NewServiceWithBaseURL is used by tests to point at a fake endpoint.
func NewServiceWithBaseURL(cache Cache, baseURL string) *Service {
	s := NewService(cache)
	s.baseURL = baseURL
	return s
}

// tzSuffix strips Aladhan's " (TZ)" decoration from timing strings.
var tzSuffix = regexp.MustCompile(`\s*\(.*\)`)

func cleanTime(s string) string {
	return strings.TrimSpace(tzSuffix.ReplaceAllString(s, ""))
}

// Fetch returns prayer times for a date, preferring a fresh cache entry and
// falling back to a stale one when the API is unreachable.
func (s *Service) Fetch(date string, loc Location) (Times, error) {
	entry, hasCached := s.cached(date)
	if hasCached && time.Unix(entry.FetchedAt, 0).Add(cacheTTL).After(s.now()) {
		return entry.Data, nil
	}

	times, err := s.fetchRemote(date, loc)
	if err != nil {
		if hasCached {
			return entry.Data, nil
		}
		return Times{}, err
	}

	s.store(date, times)
	return times, nil
}

func (s *Service) cached(date string) (cacheEntry, bool) {
	raw, ok, err := s.cache.PrayerCache(date)
	if err != nil || !ok {
		return cacheEntry{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Date != date {
		return cacheEntry{}, false
	}
	return entry, true
}

func (s *Service) store(date string, times Times) {
	data, err := json.Marshal(cacheEntry{Date: date, FetchedAt: s.now().Unix(), Data: times})
	if err != nil {
		return
	}
	// Cache writes are best-effort.
	_ = s.cache.SetPrayerCache(date, data)
}

func (s *Service) fetchRemote(date string, loc Location) (Times, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Times{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	url := fmt.Sprintf("%s/timings/%s?latitude=%f&longitude=%f&method=%d",
		s.baseURL, parsed.Format("02-01-2006"), loc.Latitude, loc.Longitude, calculationMethod)

	resp, err := s.httpClient.Get(url)
	if err != nil {
		return Times{}, fmt.Errorf("fetch prayer times: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Times{}, fmt.Errorf("prayer times API returned %d", resp.StatusCode)
	}

	var body aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Times{}, fmt.Errorf("decode prayer times: %w", err)
	}

	t := body.Data.Timings
	return Times{
		Fajr:     cleanTime(t["Fajr"]),
		Sunrise:  cleanTime(t["Sunrise"]),
		Dhuhr:    cleanTime(t["Dhuhr"]),
		Asr:      cleanTime(t["Asr"]),
		Maghrib:  cleanTime(t["Maghrib"]),
		Isha:     cleanTime(t["Isha"]),
		Date:     date,
		Location: loc,
	}, nil
}

// SaveLocation remembers the last-used coordinates.
func (s *Service) SaveLocation(loc Location) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return s.cache.SetPrayerCache(locationCacheKey, data)
}

// SavedLocation returns the last-used coordinates, if any.
func (s *Service) SavedLocation() (Location, bool) {
	raw, ok, err := s.cache.PrayerCache(locationCacheKey)
	if err != nil || !ok {
		return Location{}, false
	}
	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return Location{}, false
	}
	return loc, true
}

// Next returns the first prayer after the given wall-clock moment, rolling
// over to tomorrow's fajr when the day is done. Sunrise is informational and
// never "next".
func (t Times) Next(now time.Time) (NextPrayer, bool) {
	order := []struct {
		name string
		at   string
	}{
		{"fajr", t.Fajr},
		{"dhuhr", t.Dhuhr},
		{"asr", t.Asr},
		{"maghrib", t.Maghrib},
		{"isha", t.Isha},
	}

	for _, p := range order {
		at, ok := timeOn(now, p.at)
		if !ok {
			continue
		}
		if at.After(now) {
			return NextPrayer{Name: p.name, Time: p.at, Remaining: at.Sub(now)}, true
		}
	}

	at, ok := timeOn(now, t.Fajr)
	if !ok {
		return NextPrayer{}, false
	}
	at = at.AddDate(0, 0, 1)
	return NextPrayer{Name: "fajr", Time: t.Fajr, Remaining: at.Sub(now)}, true
}

// timeOn places an HH:MM string on the same day as ref.
func timeOn(ref time.Time, hhmm string) (time.Time, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), h, m, 0, 0, ref.Location()), true
}

// FormatCountdown renders a duration as a compact timer.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
