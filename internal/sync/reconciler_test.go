package sync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/remote"
	"github.com/ohamdan/fanous/internal/storage"
)

func newStore(t *testing.T) storage.Provider {
	t.Helper()
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "fanous.json"))
	require.NoError(t, s.Init())
	return s
}

func newReconciler(t *testing.T, store storage.Provider, handler http.HandlerFunc) (*Reconciler, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := remote.NewClient(srv.URL, store)
	return NewReconciler(store, client, zap.NewNop()), srv
}

func seedLogs(t *testing.T, store storage.Provider, dates ...string) {
	t.Helper()
	for i, date := range dates {
		log := models.NewDailyLog(date, i+1, 21, 1, 21)
		require.NoError(t, store.SaveLog(log))
	}
}

func TestSyncAllPushesInDateOrder(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))
	seedLogs(t, store, "2026-02-21", "2026-02-19", "2026-02-20")

	var pushed []string
	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/daily-log/") {
			pushed = append(pushed, strings.TrimPrefix(req.URL.Path, "/daily-log/"))
		}
		w.Write([]byte("{}"))
	})

	result, err := r.SyncAll()
	require.NoError(t, err)
	require.Equal(t, 3, result.Pushed)
	require.Empty(t, result.Errors)
	require.Equal(t, []string{"2026-02-19", "2026-02-20", "2026-02-21"}, pushed)
}

func TestSyncAllContinuesPastFailedRecord(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))
	seedLogs(t, store, "2026-02-19", "2026-02-20", "2026-02-21")

	var attempts []string
	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/daily-log/") {
			date := strings.TrimPrefix(req.URL.Path, "/daily-log/")
			attempts = append(attempts, date)
			if date == "2026-02-20" {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
				return
			}
		}
		w.Write([]byte("{}"))
	})

	result, err := r.SyncAll()
	require.NoError(t, err)
	require.Equal(t, 2, result.Pushed)
	require.Len(t, result.Errors, 1)
	require.Equal(t, "2026-02-20", result.Errors[0].Date)
	require.Equal(t, []string{"2026-02-19", "2026-02-20", "2026-02-21"}, attempts)
}

func TestSyncAllPushesGoal(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.SaveGoal(models.NewQuranGoal(2)))

	var got map[string]int
	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/quran-goal" {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		}
		w.Write([]byte("{}"))
	})

	_, err := r.SyncAll()
	require.NoError(t, err)
	require.Equal(t, 2, got["targetCompletions"])
}

func TestSyncAllRequiresSignIn(t *testing.T) {
	store := newStore(t)
	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := r.SyncAll()
	require.Error(t, err)
}

func TestGuestModeSuppressesSync(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.SetGuestMode(true))

	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := r.SyncAll()
	require.Error(t, err)

	r.PushLog(models.NewDailyLog("2026-02-19", 1, 21, 1, 21))
}

func TestLoginStoresTokenAndProfile(t *testing.T) {
	store := newStore(t)
	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/auth/login", req.URL.Path)
		json.NewEncoder(w).Encode(remote.AuthResponse{
			Token: "tok-123",
			User:  remote.User{ID: "u1", Name: "Omar", Email: "omar@example.com"},
		})
	})

	profile, err := r.Login("omar@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Omar", profile.Name)
	require.Equal(t, "tok-123", store.Token())

	saved, err := store.GetProfile()
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, "omar@example.com", saved.Email)

	guest, err := store.GuestMode()
	require.NoError(t, err)
	require.False(t, guest)
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	store := newStore(t)
	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad credentials"})
	})

	_, err := r.Login("omar@example.com", "wrong")
	require.Error(t, err)
	require.Empty(t, store.Token())

	profile, err := store.GetProfile()
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestBootstrapKeepsTokenWhenOffline(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	srv.Close()
	client := remote.NewClient(srv.URL, store)
	r := NewReconciler(store, client, zap.NewNop())

	require.NoError(t, r.Bootstrap())
	require.Equal(t, "tok", store.Token())
}

func TestBootstrapDropsRejectedToken(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("stale"))

	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
	})

	require.NoError(t, r.Bootstrap())
	require.Empty(t, store.Token())
}

func TestBootstrapRefreshesProfile(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))

	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(remote.MeResponse{ID: "u1", Name: "Omar", Email: "omar@example.com"})
	})

	require.NoError(t, r.Bootstrap())
	profile, err := store.GetProfile()
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Equal(t, "Omar", profile.Name)
}

func TestLogoutKeepsLocalData(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetToken("tok"))
	seedLogs(t, store, "2026-02-19")

	r, _ := newReconciler(t, store, func(w http.ResponseWriter, req *http.Request) {})
	require.NoError(t, r.Logout())
	require.Empty(t, store.Token())

	all, err := store.GetAllLogs()
	require.NoError(t, err)
	require.Len(t, all, 1)
}
