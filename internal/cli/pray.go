package cli

import (
	"fmt"
	"strings"

	"github.com/ohamdan/fanous/internal/models"
)

type PrayCmd struct {
	Prayers []string `arg:"" help:"Prayer slots to mark (fajr, dhuhr, asr, maghrib, isha, taraweeh, or 'all')."`
	Date    string   `help:"Date to update (YYYY-MM-DD or 'today')." default:"today"`
	Undo    bool     `help:"Unmark instead of mark."`
}

func (c *PrayCmd) Run(ctx *Context) error {
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

	for _, name := range c.Prayers {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			for _, slot := range models.PrayerNames {
				log.Prayers.Set(slot, !c.Undo)
			}
			continue
		}
		if !log.Prayers.Set(name, !c.Undo) {
			return fmt.Errorf("unknown prayer %q, expected one of: %s",
				name, strings.Join(models.PrayerNames, ", "))
		}
	}

	if err := ctx.Store.SaveLog(log); err != nil {
		return err
	}
	ctx.Sync.PushLog(log)

	printDay(log)
	return nil
}
