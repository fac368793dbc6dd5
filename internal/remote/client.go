// Package remote talks to the fanous sync backend. Every call is best-effort
// from the caller's point of view; the local store stays the source of truth.
package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/quran"
)

const (
	requestTimeout = 5 * time.Second
	healthTimeout  = 3 * time.Second
)

// TokenStore holds the bearer token between sessions. The storage Provider
// satisfies it.
type TokenStore interface {
	Token() string
	SetToken(token string) error
}

// APIError is a response the server actually produced, as opposed to a
// transport failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsOffline reports whether err was a transport failure rather than a server
// response. Callers use it to decide between "retry later" and "fix your
// request".
func IsOffline(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		tokens:     tokens,
	}
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MeResponse mirrors the backend's user document.
type MeResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request (endpoint: %s): %w", endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request (endpoint: %s): %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request (endpoint: %s): %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// A rejected token is dead weight; drop it so the next session
		// starts unauthenticated instead of failing every call.
		if resp.StatusCode == http.StatusUnauthorized {
			_ = c.tokens.SetToken("")
		}
		var eb errorBody
		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(data, &eb) == nil {
				if eb.Error != "" {
					message = eb.Error
				} else if eb.Message != "" {
					message = eb.Message
				}
			}
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response (endpoint: %s): %w", endpoint, err)
	}
	return nil
}

func (c *Client) Register(name, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	payload := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(http.MethodPost, "/auth/register", payload, &resp); err != nil {
		return AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	return resp, nil
}

func (c *Client) Login(email, password string) (AuthResponse, error) {
	var resp AuthResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	return resp, nil
}

func (c *Client) Me() (MeResponse, error) {
	var resp MeResponse
	if err := c.do(http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return MeResponse{}, fmt.Errorf("fetch profile: %w", err)
	}
	return resp, nil
}

func (c *Client) PutDailyLog(date string, log models.DailyLog) error {
	if err := c.do(http.MethodPut, "/daily-log/"+date, log, nil); err != nil {
		return fmt.Errorf("push record (date: %s): %w", date, err)
	}
	return nil
}

func (c *Client) GetDailyLog(date string) (models.DailyLog, error) {
	var log models.DailyLog
	if err := c.do(http.MethodGet, "/daily-log/"+date, nil, &log); err != nil {
		return models.DailyLog{}, fmt.Errorf("fetch record (date: %s): %w", date, err)
	}
	return log, nil
}

func (c *Client) GetDailyLogs() ([]models.DailyLog, error) {
	var logs []models.DailyLog
	if err := c.do(http.MethodGet, "/daily-log", nil, &logs); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return logs, nil
}

func (c *Client) PutQuranGoal(targetCompletions int) error {
	payload := map[string]int{"targetCompletions": targetCompletions}
	if err := c.do(http.MethodPut, "/quran-goal", payload, nil); err != nil {
		return fmt.Errorf("push goal: %w", err)
	}
	return nil
}

func (c *Client) GetQuranGoal() (models.QuranGoal, error) {
	var goal models.QuranGoal
	if err := c.do(http.MethodGet, "/quran-goal", nil, &goal); err != nil {
		return models.QuranGoal{}, fmt.Errorf("fetch goal: %w", err)
	}
	return goal, nil
}

func (c *Client) GetSchedule() ([]quran.ScheduleDay, error) {
	var schedule []quran.ScheduleDay
	if err := c.do(http.MethodGet, "/quran-goal/schedule", nil, &schedule); err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	return schedule, nil
}

func (c *Client) GetStats() (json.RawMessage, error) {
	var stats json.RawMessage
	if err := c.do(http.MethodGet, "/daily-log/stats/summary", nil, &stats); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	return stats, nil
}

// Health checks reachability without auth and without touching the token.
func (c *Client) Health() bool {
	client := &http.Client{Timeout: healthTimeout}
	resp, err := client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
