package cli

import (
	"fmt"

	"github.com/ohamdan/fanous/internal/remote"
)

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !ctx.Client.Health() {
		return fmt.Errorf("backend unreachable, your records are safe locally")
	}

	if err := ctx.Sync.Bootstrap(); err != nil {
		return err
	}

	result, err := ctx.Sync.SyncAll()
	if err != nil {
		return err
	}

	fmt.Printf("Pushed %d record(s).\n", result.Pushed)
	if len(result.Errors) == 0 {
		return nil
	}

	fmt.Printf("%d record(s) failed:\n", len(result.Errors))
	for _, re := range result.Errors {
		fmt.Printf("  %s: %v\n", re.Date, re.Err)
	}
	if remote.IsOffline(result.Errors[0].Err) {
		fmt.Println("Connection dropped mid-sync; run 'fanous sync' again when online.")
	}
	return fmt.Errorf("sync finished with errors")
}
