package cli

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
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

	printDay(log)
	return nil
}
