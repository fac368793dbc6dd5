package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/ohamdan/fanous/internal/hijri"
	"github.com/ohamdan/fanous/internal/models"
)

type OnboardCmd struct{}

func (c *OnboardCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	onboarded, err := ctx.Store.IsOnboarded()
	if err != nil {
		return err
	}
	if onboarded {
		fmt.Println("Already set up. Use 'fanous quran goal' or 'fanous login' to change settings.")
		return nil
	}

	name := ""
	startDate := hijri.DefaultStartDate
	completions := "1"
	guest := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Value(&name),
			huh.NewInput().
				Title("First day of Ramadan (YYYY-MM-DD)").
				Value(&startDate).
				Validate(func(s string) error {
					if !hijri.ValidDate(s) {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("How many full Quran readings this Ramadan?").
				Value(&completions).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("enter a number of at least 1")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Stay in guest mode?").
				Description("Guest mode keeps everything on this machine. You can sign in later.").
				Value(&guest),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	target, _ := strconv.Atoi(completions)

	if err := ctx.Store.SetStartDate(startDate); err != nil {
		return err
	}
	if err := ctx.Store.SaveGoal(models.NewQuranGoal(target)); err != nil {
		return err
	}
	if err := ctx.Store.SaveProfile(models.UserProfile{Name: name, PeriodStartDate: startDate}); err != nil {
		return err
	}
	if err := ctx.Store.SetGuestMode(guest); err != nil {
		return err
	}
	if err := ctx.Store.SetOnboarded(true); err != nil {
		return err
	}

	fmt.Printf("\nWelcome, %s. Tracking starts %s.\n", name, startDate)
	fmt.Println("Try 'fanous day' to see today, or 'fanous tui' for the dashboard.")
	if guest {
		fmt.Println("Run 'fanous login' whenever you want cross-device sync.")
	}
	return nil
}
