package main

import (
	"fmt"

	"github.com/fwojciec/aipage"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	page, err := findPage(deps, c.ID)
	if err != nil {
		return err
	}

	switch {
	case c.Source:
		fmt.Fprintf(deps.Stdout, "title: %s\nroute: %s\n", page.Title, page.Route)
		fmt.Fprintf(deps.Stdout, "\n--- markup ---\n%s\n", page.Markup)
		fmt.Fprintf(deps.Stdout, "\n--- style ---\n%s\n", page.Style)
		fmt.Fprintf(deps.Stdout, "\n--- script ---\n%s\n", page.Script)
		return nil

	case c.Markdown:
		md, err := deps.Converter.Convert(page.Markup)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", aipage.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	if page.Compiled == "" {
		fmt.Fprintf(deps.Stderr, "error: page %q has not been compiled. Run 'aipage publish %s' to rebuild it.\n", c.ID, c.ID)
		return aipage.Errorf(aipage.ENOTFOUND, "page %q has not been compiled", c.ID)
	}
	fmt.Fprintln(deps.Stdout, page.Compiled)
	return nil
}

// findPage looks up the page published for a conversation and reports
// lookup failures on stderr.
func findPage(deps *Dependencies, id string) (*aipage.Page, error) {
	if deps.Finder == nil {
		fmt.Fprintln(deps.Stderr, "error: reading pages requires the local database")
		return nil, aipage.Errorf(aipage.EINVALID, "page lookup is not available")
	}

	identity := aipage.Identity{ID: id}
	if err := identity.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aipage.ErrorMessage(err))
		return nil, err
	}

	page, err := deps.Finder.FindPage(deps.Ctx, aipage.PageKey{
		ApplicationID: deps.ApplicationID,
		TemplateID:    deps.TemplateID,
		Route:         identity.Route(),
	})
	if aipage.ErrorCode(err) == aipage.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: no page published for %q. Use 'aipage publish %s' first.\n", id, id)
		return nil, err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aipage.ErrorMessage(err))
		return nil, err
	}
	return page, nil
}
