package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/aipage"
	main "github.com/fwojciec/aipage/cmd/aipage"
	"github.com/fwojciec/aipage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() *aipage.Page {
	return &aipage.Page{
		ID:            "page-1",
		ApplicationID: "app1",
		TemplateID:    "tpl1",
		Route:         "/ai/c1",
		Title:         "Snake",
		Markup:        "<h1>Snake</h1>",
		Style:         "h1{color:red}",
		Script:        "function init() {\nstart();\n}\ninit();",
		Compiled:      "<!DOCTYPE html><html><body><h1>Snake</h1></body></html>",
	}
}

func showDeps(finder aipage.PageFinder) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:           context.Background(),
		Stdout:        stdout,
		Stderr:        stderr,
		ApplicationID: "app1",
		TemplateID:    "tpl1",
		Finder:        finder,
	}, stdout, stderr
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints compiled page", func(t *testing.T) {
		t.Parallel()

		var gotKey aipage.PageKey
		deps, stdout, _ := showDeps(&mock.PageFinder{
			FindPageFn: func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
				gotKey = key
				return testPage(), nil
			},
		})

		cmd := &main.ShowCmd{ID: "c1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, aipage.PageKey{ApplicationID: "app1", TemplateID: "tpl1", Route: "/ai/c1"}, gotKey)
		assert.Equal(t, testPage().Compiled+"\n", stdout.String())
	})

	t.Run("prints source parts", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := showDeps(&mock.PageFinder{
			FindPageFn: func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
				return testPage(), nil
			},
		})

		cmd := &main.ShowCmd{ID: "c1", Source: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "title: Snake")
		assert.Contains(t, output, "--- markup ---\n<h1>Snake</h1>")
		assert.Contains(t, output, "--- style ---\nh1{color:red}")
		assert.Contains(t, output, "--- script ---\nfunction init() {")
	})

	t.Run("prints markdown preview of markup", func(t *testing.T) {
		t.Parallel()

		var converted string
		deps, stdout, _ := showDeps(&mock.PageFinder{
			FindPageFn: func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
				return testPage(), nil
			},
		})
		deps.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				converted = html
				return "# Snake", nil
			},
		}

		cmd := &main.ShowCmd{ID: "c1", Markdown: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Snake</h1>", converted)
		assert.Equal(t, "# Snake\n", stdout.String())
	})

	t.Run("reports pages that were never compiled", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := showDeps(&mock.PageFinder{
			FindPageFn: func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
				p := testPage()
				p.Compiled = ""
				return p, nil
			},
		})

		cmd := &main.ShowCmd{ID: "c1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, aipage.ENOTFOUND, aipage.ErrorCode(err))
		assert.Contains(t, stderr.String(), "aipage publish c1")
	})

	t.Run("reports missing pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := showDeps(&mock.PageFinder{
			FindPageFn: func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
				return nil, aipage.Errorf(aipage.ENOTFOUND, "page not found")
			},
		})

		cmd := &main.ShowCmd{ID: "c9"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), `no page published for "c9"`)
	})

	t.Run("reports lookup errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := showDeps(&mock.PageFinder{
			FindPageFn: func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
				return nil, errors.New("disk I/O error")
			},
		})

		cmd := &main.ShowCmd{ID: "c1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: disk I/O error")
	})

	t.Run("rejects invalid IDs before lookup", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := showDeps(&mock.PageFinder{})

		cmd := &main.ShowCmd{ID: "../c1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, aipage.EINVALID, aipage.ErrorCode(err))
	})

	t.Run("requires the local database", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := showDeps(nil)

		cmd := &main.ShowCmd{ID: "c1"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, aipage.EINVALID, aipage.ErrorCode(err))
		assert.Contains(t, stderr.String(), "local database")
	})
}
