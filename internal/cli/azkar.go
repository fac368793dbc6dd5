package cli

import "fmt"

type AzkarCmd struct {
	Session string `arg:"" help:"Which session to mark: morning or evening."`
	Date    string `help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
	Undo    bool   `help:"Unmark instead of mark."`
}

func (c *AzkarCmd) Run(ctx *Context) error {
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

	switch c.Session {
	case "morning":
		log.Azkar.Morning = !c.Undo
	case "evening":
		log.Azkar.Evening = !c.Undo
	default:
		return fmt.Errorf("unknown session %q, expected 'morning' or 'evening'", c.Session)
	}

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	printDay(log)
	return nil
}
