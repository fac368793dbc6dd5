// Package sync pushes local records to the backend. The local store is the
// source of truth; nothing here ever overwrites local data from the server.
package sync

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/remote"
	"github.com/ohamdan/fanous/internal/storage"
)

// RecordError is one failed push inside an otherwise continuing sync.
type RecordError struct {
	Date string
	Err  error
}

// Result summarizes a full sync pass.
type Result struct {
	Pushed int
	Errors []RecordError
}

type Reconciler struct {
	store  storage.Provider
	client *remote.Client
	logger *zap.Logger
}

func NewReconciler(store storage.Provider, client *remote.Client, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{store: store, client: client, logger: logger}
}

// Authenticated reports whether a bearer token is present. Guest mode
// suppresses sync even when a stale token exists.
func (r *Reconciler) Authenticated() (bool, error) {
	guest, err := r.store.GuestMode()
	if err != nil {
		return false, err
	}
	if guest {
		return false, nil
	}
	return r.store.Token() != "", nil
}

// SyncAll pushes every local record and then the goal, sequentially in date
// order. A failed record is collected and the pass moves on; there is no
// rollback of records already pushed.
func (r *Reconciler) SyncAll() (Result, error) {
	var result Result

	ok, err := r.Authenticated()
	if err != nil {
		return result, err
	}
	if !ok {
		return result, fmt.Errorf("not signed in")
	}

	logs, err := r.store.GetAllLogs()
	if err != nil {
		return result, err
	}

	dates := make([]string, 0, len(logs))
	for date := range logs {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		if err := r.client.PutDailyLog(date, logs[date]); err != nil {
			r.logger.Warn("record push failed", zap.String("date", date), zap.Error(err))
			result.Errors = append(result.Errors, RecordError{Date: date, Err: err})
			continue
		}
		result.Pushed++
	}

	goal, err := r.store.GetGoal()
	if err != nil {
		return result, err
	}
	if err := r.client.PutQuranGoal(goal.TargetCompletions); err != nil {
		r.logger.Warn("goal push failed", zap.Error(err))
		result.Errors = append(result.Errors, RecordError{Date: "quran-goal", Err: err})
	}

	return result, nil
}

// PushLog sends one record upstream, best-effort. Errors are logged and
// swallowed so a save never fails because the network did.
func (r *Reconciler) PushLog(log models.DailyLog) {
	ok, err := r.Authenticated()
	if err != nil || !ok {
		return
	}
	if err := r.client.PutDailyLog(log.Date, log); err != nil {
		r.logger.Debug("background record push failed", zap.String("date", log.Date), zap.Error(err))
	}
}

// PushGoal sends the reading goal upstream, best-effort.
func (r *Reconciler) PushGoal(goal models.QuranGoal) {
	ok, err := r.Authenticated()
	if err != nil || !ok {
		return
	}
	if err := r.client.PutQuranGoal(goal.TargetCompletions); err != nil {
		r.logger.Debug("background goal push failed", zap.Error(err))
	}
}

// Login authenticates, stores the token and profile, and leaves guest mode.
func (r *Reconciler) Login(email, password string) (models.UserProfile, error) {
	resp, err := r.client.Login(email, password)
	if err != nil {
		return models.UserProfile{}, err
	}
	return r.adopt(resp)
}

// Register creates an account and signs in with it.
func (r *Reconciler) Register(name, email, password string) (models.UserProfile, error) {
	resp, err := r.client.Register(name, email, password)
	if err != nil {
		return models.UserProfile{}, err
	}
	return r.adopt(resp)
}

func (r *Reconciler) adopt(resp remote.AuthResponse) (models.UserProfile, error) {
	previous := r.store.Token()
	if err := r.store.SetToken(resp.Token); err != nil {
		return models.UserProfile{}, err
	}

	startDate, err := r.store.StartDate()
	if err != nil {
		// A half-applied login is worse than a failed one.
		_ = r.store.SetToken(previous)
		return models.UserProfile{}, err
	}

	profile := models.UserProfile{
		Name:            resp.User.Name,
		Email:           resp.User.Email,
		PeriodStartDate: startDate,
	}
	if err := r.store.SaveProfile(profile); err != nil {
		_ = r.store.SetToken(previous)
		return models.UserProfile{}, err
	}
	if err := r.store.SetGuestMode(false); err != nil {
		return profile, err
	}
	return profile, nil
}

// Bootstrap revalidates a stored token at startup. A server rejection drops
// the token; being offline keeps it, since the session may still be valid.
func (r *Reconciler) Bootstrap() error {
	if r.store.Token() == "" {
		return nil
	}

	me, err := r.client.Me()
	if err != nil {
		if remote.IsOffline(err) {
			r.logger.Debug("token revalidation skipped, backend unreachable", zap.Error(err))
			return nil
		}
		// The client already cleared the token on 401.
		r.logger.Info("stored session rejected by server", zap.Error(err))
		return nil
	}

	startDate, err := r.store.StartDate()
	if err != nil {
		return err
	}
	return r.store.SaveProfile(models.UserProfile{
		Name:            me.Name,
		Email:           me.Email,
		PeriodStartDate: startDate,
	})
}

// Logout drops the token and resets the guest flag. Local data is untouched.
func (r *Reconciler) Logout() error {
	if err := r.store.SetToken(""); err != nil {
		return err
	}
	return r.store.SetGuestMode(false)
}
