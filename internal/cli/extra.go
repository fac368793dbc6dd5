package cli

import (
	"fmt"
	"strings"

	"github.com/ohamdan/fanous/internal/models"
)

type ExtraCmd struct {
	Add  ExtraAddCmd  `cmd:"" help:"Add a good deed to a day."`
	Done ExtraDoneCmd `cmd:"" help:"Toggle completion of a deed."`
	Rm   ExtraRmCmd   `cmd:"" help:"Remove a deed."`
	List ExtraListCmd `cmd:"" help:"List a day's deeds."`
}

type ExtraAddCmd struct {
	Description []string `arg:"" help:"What the deed is."`
	Date        string   `help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ExtraAddCmd) Run(ctx *Context) error {
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

	deed := models.NewExtraDeed(strings.Join(c.Description, " "))
	log.Extras = append(log.Extras, deed)

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	fmt.Printf("Added deed %s: %s\n", shortID(deed.ID), deed.Description)
	return nil
}

type ExtraDoneCmd struct {
	ID   string `arg:"" help:"Deed ID (a unique prefix is enough)."`
	Date string `help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ExtraDoneCmd) Run(ctx *Context) error {
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

	id, err := matchDeed(log.Extras, c.ID)
	if err != nil {
		return err
	}
	log.ToggleExtra(id)

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	printDay(log)
	return nil
}

type ExtraRmCmd struct {
	ID   string `arg:"" help:"Deed ID (a unique prefix is enough)."`
	Date string `help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ExtraRmCmd) Run(ctx *Context) error {
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

	id, err := matchDeed(log.Extras, c.ID)
	if err != nil {
		return err
	}
	log.RemoveExtra(id)

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	fmt.Printf("Removed deed %s.\n", shortID(id))
	return nil
}

type ExtraListCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ExtraListCmd) Run(ctx *Context) error {
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

	if len(log.Extras) == 0 {
		fmt.Printf("No deeds recorded for %s.\n", date)
		return nil
	}

	for _, deed := range log.Extras {
		fmt.Printf("%s %s  %s\n", mark(deed.Completed), shortID(deed.ID), deed.Description)
	}
	return nil
}

// matchDeed resolves a possibly-abbreviated ID against the day's deeds.
func matchDeed(deeds []models.ExtraDeed, prefix string) (string, error) {
	var matches []string
	for _, deed := range deeds {
		if strings.HasPrefix(deed.ID, prefix) {
			matches = append(matches, deed.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no deed matching %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("deed ID %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
