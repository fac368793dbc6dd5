package cli

import (
	"fmt"

	"github.com/ohamdan/fanous/internal/prayertimes"
)

type TimesCmd struct {
	Lat float64 `help:"Latitude. Remembered after the first use."`
	Lon float64 `help:"Longitude. Remembered after the first use."`
}

func (c *TimesCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	svc := prayertimes.NewService(ctx.Store)

	loc := prayertimes.Location{Latitude: c.Lat, Longitude: c.Lon}
	if c.Lat == 0 && c.Lon == 0 {
		saved, ok := svc.SavedLocation()
		if !ok {
			return fmt.Errorf("no saved location, pass --lat and --lon once")
		}
		loc = saved
	} else if err := svc.SaveLocation(loc); err != nil {
		ctx.Logger.Warn("could not save location")
	}

	date := ctx.Now.Format("2006-01-02")
	times, err := svc.Fetch(date, loc)
	if err != nil {
		return fmt.Errorf("prayer times unavailable: %w", err)
	}

	fmt.Printf("Prayer times for %s (%.2f, %.2f)\n\n", date, loc.Latitude, loc.Longitude)
	fmt.Printf("  Fajr:     %s\n", times.Fajr)
	fmt.Printf("  Sunrise:  %s\n", times.Sunrise)
	fmt.Printf("  Dhuhr:    %s\n", times.Dhuhr)
	fmt.Printf("  Asr:      %s\n", times.Asr)
	fmt.Printf("  Maghrib:  %s\n", times.Maghrib)
	fmt.Printf("  Isha:     %s\n", times.Isha)

	if next, ok := times.Next(ctx.Now); ok {
		fmt.Printf("\n  Next: %s at %s (in %s)\n", next.Name, next.Time,
			prayertimes.FormatCountdown(next.Remaining))
	}

	return nil
}
