package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/models"
)

const tabCount = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StatePagesForm, StateGoalForm:
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
		case key.Matches(msg, m.keys.PrevDay):
			m.loadDay(hijri.AddDays(m.date, -1))
		case key.Matches(msg, m.keys.NextDay):
			m.loadDay(hijri.AddDays(m.date, 1))
		case key.Matches(msg, m.keys.Today):
			m.loadDay(m.today)
		default:
			if m.state == StateDay {
				return m.updateDay(msg)
			}
		}
	}

	return m, nil
}

func (m Model) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Fasting):
		m.log.Fasting.Completed = !m.log.Fasting.Completed
		m.saveDay()
	case key.Matches(msg, m.keys.Suhoor):
		m.log.Fasting.PreDawnMeal = !m.log.Fasting.PreDawnMeal
		m.saveDay()
	case key.Matches(msg, m.keys.Prayer):
		idx, err := strconv.Atoi(msg.String())
		if err == nil && idx >= 1 && idx <= len(models.PrayerNames) {
			name := models.PrayerNames[idx-1]
			m.log.Prayers.Set(name, !m.log.Prayers.Get(name))
			m.saveDay()
		}
	case key.Matches(msg, m.keys.Morning):
		m.log.Azkar.Morning = !m.log.Azkar.Morning
		m.saveDay()
	case key.Matches(msg, m.keys.Evening):
		m.log.Azkar.Evening = !m.log.Azkar.Evening
		m.saveDay()
	case key.Matches(msg, m.keys.Pages):
		m.pagesInput = strconv.Itoa(m.log.Quran.PagesRead)
		m.form = newPagesForm(&m.pagesInput)
		m.previousState = m.state
		m.state = StatePagesForm
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Goal):
		m.goalInput = strconv.Itoa(m.goal.TargetCompletions)
		m.form = newGoalForm(&m.goalInput)
		m.previousState = m.state
		m.state = StateGoalForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case StatePagesForm:
			pages, err := strconv.Atoi(m.pagesInput)
			if err == nil {
				m.log.Quran.SetPagesRead(pages)
				m.saveDay()
			}
		case StateGoalForm:
			target, err := strconv.Atoi(m.goalInput)
			if err == nil {
				goal := models.NewQuranGoal(target)
				if err := m.store.SaveGoal(goal); err != nil {
					m.err = err
				} else {
					m.goal = goal
					m.sync.PushGoal(goal)
					// Reload so an untouched day picks up its new target.
					m.loadDay(m.date)
				}
			}
		}
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}

	return m, tea.Batch(cmds...)
}

func newPagesForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pages read today").
				Value(value).
				Validate(validateNonNegative),
		),
	)
}

func newGoalForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full readings this Ramadan").
				Value(value).
				Validate(validatePositive),
		),
	)
}

func validateNonNegative(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("enter a number of at least 1")
	}
	return nil
}
