package cli

import "fmt"

type ResetCmd struct {
	Force bool `help:"Skip confirmation."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Force {
		return fmt.Errorf("this wipes all local records; re-run with --force if you mean it")
	}

	// One last snapshot before the data goes.
	ctx.PerformAutomaticBackup()

	if err := ctx.Store.Clear(); err != nil {
		return err
	}
	fmt.Println("All local data cleared. A backup was kept in the backups directory.")
	return nil
}
