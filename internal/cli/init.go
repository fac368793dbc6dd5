package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized fanous storage at: %s\n", ctx.Store.ConfigPath())
	fmt.Println("Run 'fanous onboard' to set up your tracking period.")
	return nil
}
