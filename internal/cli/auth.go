package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ohamdan/fanous/internal/remote"
)

type RegisterCmd struct {
	Name  string `help:"Display name."`
	Email string `help:"Account email."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name, email, password := c.Name, c.Email, ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&name),
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	profile, err := ctx.Sync.Register(name, email, password)
	if err != nil {
		if remote.IsOffline(err) {
			return fmt.Errorf("backend unreachable, try again later: %w", err)
		}
		return err
	}

	fmt.Printf("Account created. Signed in as %s <%s>.\n", profile.Name, profile.Email)
	fmt.Println("Run 'fanous sync' to push your local records.")
	return nil
}

type LoginCmd struct {
	Email string `help:"Account email."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	email, password := c.Email, ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	profile, err := ctx.Sync.Login(email, password)
	if err != nil {
		if remote.IsOffline(err) {
			return fmt.Errorf("backend unreachable, try again later: %w", err)
		}
		return err
	}

	fmt.Printf("Signed in as %s <%s>.\n", profile.Name, profile.Email)
	fmt.Println("Run 'fanous sync' to push your local records.")
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if ctx.Store.Token() == "" {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := ctx.Sync.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out. Local records are kept.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Sync.Bootstrap(); err != nil {
		return err
	}

	if ctx.Store.Token() == "" {
		guest, err := ctx.Store.GuestMode()
		if err != nil {
			return err
		}
		if guest {
			fmt.Println("Guest mode: tracking locally, sync disabled.")
		} else {
			fmt.Println("Not signed in.")
		}
		return nil
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("Signed in (profile not cached yet).")
		return nil
	}
	fmt.Printf("Signed in as %s <%s>.\n", profile.Name, profile.Email)
	return nil
}

type GuestCmd struct {
	Off bool `help:"Leave guest mode."`
}

func (c *GuestCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.SetGuestMode(!c.Off); err != nil {
		return err
	}
	if c.Off {
		fmt.Println("Guest mode off.")
	} else {
		fmt.Println("Guest mode on: everything stays on this machine.")
	}
	return nil
}
