package cli

import (
	"fmt"

	"github.com/ohamdan/fanous/internal/progress"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return err
	}

	today, err := ctx.DayNumber(ctx.Now.Format("2006-01-02"))
	if err != nil {
		return err
	}

	totals := progress.Summarize(logs)
	current, longest := progress.Streaks(logs, today)

	fmt.Printf("Days tracked:    %d\n", totals.DaysTracked)
	fmt.Printf("Current streak:  %d day(s)\n", current)
	fmt.Printf("Longest streak:  %d day(s)\n", longest)
	fmt.Println()
	fmt.Printf("Fasting days:    %d\n", totals.FastingDays)
	fmt.Printf("Prayers logged:  %d\n", totals.TotalPrayers)
	fmt.Printf("Quran pages:     %d\n", totals.QuranPages)
	fmt.Printf("Morning azkar:   %d\n", totals.MorningAzkar)
	fmt.Printf("Evening azkar:   %d\n", totals.EveningAzkar)
	fmt.Printf("Extras done:     %d\n", totals.CompletedExtras)
	fmt.Println()
	fmt.Println("Prayer breakdown:")
	fmt.Printf("  fajr %d  dhuhr %d  asr %d  maghrib %d  isha %d  taraweeh %d\n",
		totals.Prayers.Fajr, totals.Prayers.Dhuhr, totals.Prayers.Asr,
		totals.Prayers.Maghrib, totals.Prayers.Isha, totals.Prayers.Taraweeh)

	return nil
}
