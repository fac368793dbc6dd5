package cli

import (
	"fmt"

	"github.com/ohamdan/fanous/internal/hijri"
)

type FastCmd struct {
	Date   string `arg:"" help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
	Undo   bool   `help:"Mark the fast as not completed."`
	Suhoor bool   `help:"Also mark the pre-dawn meal."`
	Notes  string `help:"Free-form note about the fast."`
}

func (c *FastCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	start, err := ctx.Store.StartDate()
	if err != nil {
		return err
	}

	// Outside Ramadan a fast is voluntary and tracked separately from the
	// daily record.
	if !hijri.IsRamadan(hijri.DayNumber(date, start)) {
		if !hijri.IsTrackable(date, start) {
			return fmt.Errorf("%s is outside the tracked period", date)
		}
		if err := ctx.Store.SetVoluntaryFast(date, !c.Undo); err != nil {
			return err
		}
		if c.Undo {
			fmt.Printf("Voluntary fast removed for %s.\n", date)
		} else {
			fmt.Printf("Voluntary fast recorded for %s.\n", date)
		}
		return nil
	}

	log, err := ctx.LoadDay(date)
	if err != nil {
		return err
	}

	log.Fasting.Completed = !c.Undo
	if c.Suhoor {
		log.Fasting.PreDawnMeal = true
	}
	if c.Notes != "" {
		log.Fasting.Notes = c.Notes
	}

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	printDay(log)
	return nil
}
