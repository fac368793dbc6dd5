package cli

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ohamdan/fanous/internal/backup"
	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/progress"
	"github.com/ohamdan/fanous/internal/remote"
	"github.com/ohamdan/fanous/internal/storage"
	appsync "github.com/ohamdan/fanous/internal/sync"
)

type Context struct {
	Store  storage.Provider
	Client *remote.Client
	Sync   *appsync.Reconciler
	Logger *zap.Logger

	// Now is fixed at process start so every command in a run agrees on
	// what "today" means, even across midnight.
	Now time.Time
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.ConfigPath())
	if _, err := mgr.Create(); err != nil {
		c.Logger.Warn("automatic backup failed", zap.Error(err))
	}
}

// ResolveDate turns a command argument into a canonical YYYY-MM-DD string.
// "today" and the empty string mean the process start date.
func (c *Context) ResolveDate(arg string) (string, error) {
	if arg == "" || strings.EqualFold(arg, "today") {
		return c.Now.Format("2006-01-02"), nil
	}
	parsed, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return parsed.Format("2006-01-02"), nil
}

// DayNumber maps a date onto the tracked period using the configured start
// date. Returns 0 for dates before the period began.
func (c *Context) DayNumber(date string) (int, error) {
	start, err := c.Store.StartDate()
	if err != nil {
		return 0, err
	}
	return hijri.DayNumber(date, start), nil
}

// LoadDay loads (or creates) the record for a date, enforcing the trackable
// window.
func (c *Context) LoadDay(date string) (models.DailyLog, error) {
	start, err := c.Store.StartDate()
	if err != nil {
		return models.DailyLog{}, err
	}
	if !hijri.IsTrackable(date, start) {
		return models.DailyLog{}, fmt.Errorf("%s is outside the tracked period", date)
	}
	return storage.GetOrCreateLog(c.Store, date, hijri.DayNumber(date, start))
}

func mark(v bool) string {
	if v {
		return "✓"
	}
	return "·"
}

func printDay(log models.DailyLog) {
	hd := hijri.Date(log.DayNumber)
	fmt.Printf("%s — %s %d (day %d)\n\n", log.Date, hd.MonthNameEn, hd.DayInMonth, log.DayNumber)

	suhoor := ""
	if log.Fasting.PreDawnMeal {
		suhoor = " (suhoor ✓)"
	}
	fmt.Printf("  Fasting: %s%s\n", mark(log.Fasting.Completed), suhoor)
	if log.Fasting.Notes != "" {
		fmt.Printf("           %s\n", log.Fasting.Notes)
	}

	var prayers []string
	for _, name := range models.PrayerNames {
		prayers = append(prayers, fmt.Sprintf("%s %s", name, mark(log.Prayers.Get(name))))
	}
	fmt.Printf("  Prayers: %s\n", strings.Join(prayers, "  "))

	if log.Quran.TargetPages == 0 {
		fmt.Printf("  Quran:   goal complete, %d extra pages read\n", log.Quran.PagesRead)
	} else {
		fmt.Printf("  Quran:   %d/%d pages (pages %d–%d)\n",
			log.Quran.PagesRead, log.Quran.TargetPages, log.Quran.FromPage, log.Quran.ToPage)
	}

	fmt.Printf("  Azkar:   morning %s  evening %s\n", mark(log.Azkar.Morning), mark(log.Azkar.Evening))

	if len(log.Extras) > 0 {
		fmt.Println("  Extras:")
		for _, deed := range log.Extras {
			fmt.Printf("    %s %s  (%s)\n", mark(deed.Completed), deed.Description, shortID(deed.ID))
		}
	}

	fmt.Printf("\n  Score: %d%%\n", progress.DayScore(log))
}

// shortID truncates a UUID for display; full IDs are still accepted as input.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
