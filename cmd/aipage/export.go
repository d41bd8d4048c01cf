package main

import (
	"fmt"

	"github.com/fwojciec/aipage"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	page, err := findPage(deps, c.ID)
	if err != nil {
		return err
	}

	path, err := deps.NewPageWriter(c.Dir).WritePage(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aipage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "exported %s\n", path)
	return nil
}
