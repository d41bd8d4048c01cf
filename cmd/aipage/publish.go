package main

import (
	"fmt"

	"github.com/fwojciec/aipage"
	"github.com/fwojciec/aipage/pipeline"
	"golang.org/x/sync/errgroup"
)

// Run executes the publish command.
func (c *PublishCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*pipeline.Result, len(c.IDs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range c.IDs {
		g.Go(func() error {
			identity := aipage.Identity{ID: id, Title: c.Title}
			results[i] = deps.Pipeline.Run(deps.Ctx, deps.Workspace(id), identity)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for i, res := range results {
		id := c.IDs[i]
		switch res.Status {
		case pipeline.StatusPublished:
			fmt.Fprintf(deps.Stdout, "published %s %s\n", id, res.URL())
			if w := res.Warning(); w != "" {
				fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", id, w)
			}
		case pipeline.StatusSkipped:
			fmt.Fprintf(deps.Stdout, "skipped %s: %s\n", id, res.Error)
		default:
			failed++
			fmt.Fprintf(deps.Stderr, "failed %s: %s\n", id, res.Error)
		}
	}

	if failed > 0 {
		return aipage.Errorf(aipage.EINTERNAL, "%d of %d pages failed to publish", failed, len(results))
	}
	return nil
}
