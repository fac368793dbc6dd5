package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/progress"
	"github.com/ohamdan/fanous/internal/quran"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDay:
		content = m.viewDay()
	case StateSchedule:
		content = m.viewSchedule()
	case StateStats:
		content = m.viewStats()
	case StatePagesForm, StateGoalForm:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Day", "Schedule", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func checkbox(done bool, label string) string {
	if done {
		return doneStyle.Render("✓ " + label)
	}
	return pendingStyle.Render("· " + label)
}

func (m Model) viewDay() string {
	var b strings.Builder

	hd := hijri.Date(m.log.DayNumber)
	header := fmt.Sprintf("%s — %s %d", m.date, hd.MonthNameEn, hd.DayInMonth)
	if m.date == m.today {
		header += todayMarkerStyle.Render("  (today)")
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	fast := checkbox(m.log.Fasting.Completed, "fasting")
	if m.log.Fasting.PreDawnMeal {
		fast += doneStyle.Render("  (suhoor)")
	}
	b.WriteString(fast + "\n\n")

	for i, name := range models.PrayerNames {
		b.WriteString(fmt.Sprintf("[%d] %s\n", i+1, checkbox(m.log.Prayers.Get(name), name)))
	}
	b.WriteString("\n")

	if m.log.Quran.TargetPages == 0 {
		b.WriteString(doneStyle.Render(fmt.Sprintf("goal complete, %d extra pages", m.log.Quran.PagesRead)))
	} else {
		b.WriteString(checkbox(m.log.Quran.Completed,
			fmt.Sprintf("quran %d/%d pages (pages %d–%d)",
				m.log.Quran.PagesRead, m.log.Quran.TargetPages,
				m.log.Quran.FromPage, m.log.Quran.ToPage)))
	}
	b.WriteString("\n\n")

	b.WriteString(checkbox(m.log.Azkar.Morning, "morning azkar") + "\n")
	b.WriteString(checkbox(m.log.Azkar.Evening, "evening azkar") + "\n")

	if len(m.log.Extras) > 0 {
		b.WriteString("\n")
		for _, deed := range m.log.Extras {
			b.WriteString(checkbox(deed.Completed, deed.Description) + "\n")
		}
	}

	b.WriteString("\n" + scoreStyle.Render(fmt.Sprintf("score %d%%", progress.DayScore(m.log))))

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewSchedule() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Reading plan: %d completion(s), %d pages/day",
		m.goal.TargetCompletions, m.goal.DailyPages)))
	b.WriteString("\n\n")

	today := hijri.DayNumber(m.today, m.startDate)
	for _, day := range quran.Schedule(m.goal.TargetCompletions) {
		line := fmt.Sprintf("day %2d: pages %3d–%3d (khatma %d)",
			day.Day, day.FromPage, day.ToPage, day.KhatmaNumber)
		if day.Day == today {
			b.WriteString(todayMarkerStyle.Render("> " + line))
		} else if day.Day < today {
			b.WriteString(pendingStyle.Render("  " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	logs, err := m.store.GetAllLogs()
	if err != nil {
		return docStyle.Render(errorStyle.Render(err.Error()))
	}

	totals := progress.Summarize(logs)
	current, longest := progress.Streaks(logs, hijri.DayNumber(m.today, m.startDate))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Progress"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("days tracked    %d\n", totals.DaysTracked))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("current streak  %d", current)) + "\n")
	b.WriteString(fmt.Sprintf("longest streak  %d\n", longest))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("fasting days    %d\n", totals.FastingDays))
	b.WriteString(fmt.Sprintf("prayers logged  %d\n", totals.TotalPrayers))
	b.WriteString(fmt.Sprintf("quran pages     %d\n", totals.QuranPages))
	b.WriteString(fmt.Sprintf("morning azkar   %d\n", totals.MorningAzkar))
	b.WriteString(fmt.Sprintf("evening azkar   %d\n", totals.EveningAzkar))
	b.WriteString(fmt.Sprintf("extras done     %d\n", totals.CompletedExtras))

	return docStyle.Render(b.String())
}
