package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/storage"
	appsync "github.com/ohamdan/fanous/internal/sync"
)

type SessionState int

const (
	StateDay SessionState = iota
	StateSchedule
	StateStats
	StatePagesForm
	StateGoalForm
)

type Model struct {
	store storage.Provider
	sync  *appsync.Reconciler

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	// today is fixed at program start; date is the day being viewed.
	today     string
	date      string
	startDate string

	log  models.DailyLog
	goal models.QuranGoal
	err  error

	form       *huh.Form
	pagesInput string
	goalInput  string

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, sync *appsync.Reconciler, now time.Time) Model {
	today := now.Format("2006-01-02")

	startDate, err := store.StartDate()
	if err != nil {
		startDate = hijri.DefaultStartDate
	}

	m := Model{
		store:     store,
		sync:      sync,
		state:     StateDay,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		today:     today,
		date:      today,
		startDate: startDate,
	}

	m.goal, _ = store.GetGoal()
	m.loadDay(today)

	return m
}

// loadDay switches the viewed date, creating the record if needed. Untrackable
// dates leave the view where it was and surface an error line instead.
func (m *Model) loadDay(date string) {
	if !hijri.IsTrackable(date, m.startDate) {
		m.err = fmt.Errorf("%s is outside the tracked period", date)
		return
	}

	log, err := storage.GetOrCreateLog(m.store, date, hijri.DayNumber(date, m.startDate))
	if err != nil {
		m.err = err
		return
	}

	m.date = date
	m.log = log
	m.err = nil
}

// saveDay persists the current record and pushes it upstream best-effort.
func (m *Model) saveDay() {
	if err := m.store.SaveLog(m.log); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.sync.PushLog(m.log)
}

func (m Model) Init() tea.Cmd {
	return nil
}
