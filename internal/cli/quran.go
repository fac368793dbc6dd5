package cli

import (
	"fmt"

	"github.com/ohamdan/fanous/internal/constants"
	"github.com/ohamdan/fanous/internal/models"
	"github.com/ohamdan/fanous/internal/quran"
)

type QuranCmd struct {
	Log  QuranLogCmd  `cmd:"" help:"Record pages read for a day."`
	Plan QuranPlanCmd `cmd:"" help:"Show the reading schedule."`
	Goal QuranGoalCmd `cmd:"" help:"Show or change the completion goal."`
}

type QuranLogCmd struct {
	Pages int    `arg:"" help:"Total pages read on that day (not an increment)."`
	Date  string `help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
	Done  bool   `help:"Mark the day's reading complete regardless of page count."`
}

func (c *QuranLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	log, err := ctx.LoadDay(date)
	if err != nil {
		return err
	}

	log.Quran.SetPagesRead(c.Pages)
	if c.Done {
		log.Quran.Completed = true
	}

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	printDay(log)
	return nil
}

type QuranPlanCmd struct {
	All bool `help:"Show the whole 30-day schedule instead of a window around today."`
}

func (c *QuranPlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goal, err := ctx.Store.GetGoal()
	if err != nil {
		return err
	}
	today, err := ctx.DayNumber(ctx.Now.Format("2006-01-02"))
	if err != nil {
		return err
	}

	schedule := quran.Schedule(goal.TargetCompletions)

	fmt.Printf("Reading plan: %d completion(s), %d pages/day\n\n", goal.TargetCompletions, goal.DailyPages)
	for _, day := range schedule {
		if !c.All && (day.Day < today-2 || day.Day > today+4) {
			continue
		}
		marker := "  "
		if day.Day == today {
			marker = "> "
		}
		fmt.Printf("%sday %2d: pages %3d–%3d (khatma %d)\n",
			marker, day.Day, day.FromPage, day.ToPage, day.KhatmaNumber)
	}
	return nil
}

type QuranGoalCmd struct {
	Completions int `arg:"" optional:"" help:"New target number of full readings (khatmas)."`
}

func (c *QuranGoalCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Completions == 0 {
		goal, err := ctx.Store.GetGoal()
		if err != nil {
			return err
		}
		fmt.Printf("Goal: %d completion(s) of %d pages over %d days (%d pages/day)\n",
			goal.TargetCompletions, constants.QuranTotalPages, goal.TotalDays, goal.DailyPages)
		return nil
	}

	goal := models.NewQuranGoal(c.Completions)
	if err := ctx.Store.SaveGoal(goal); err != nil {
		return err
	}
	ctx.Sync.PushGoal(goal)

	fmt.Printf("Goal set to %d completion(s), %d pages/day.\n", goal.TargetCompletions, goal.DailyPages)
	fmt.Println("Untouched days will pick up new targets automatically.")
	return nil
}
