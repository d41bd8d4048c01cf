package aipage_test

import (
	"testing"

	"github.com/fwojciec/aipage"
	"github.com/stretchr/testify/assert"
)

func TestExtractEmbedded(t *testing.T) {
	t.Parallel()

	t.Run("returns empty strings for empty input", func(t *testing.T) {
		t.Parallel()

		got := aipage.ExtractEmbedded("")

		assert.Equal(t, aipage.Embedded{}, got)
	})

	t.Run("joins multiple blocks in source order", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<style>body { margin: 0; }</style>
<style type="text/css" media="screen">.a { color: red; }</style>
</head><body>
<div id="board"></div>
<script>let score = 0;</script>
<script type="text/javascript">console.log("ready");</script>
</body></html>`

		got := aipage.ExtractEmbedded(html)

		assert.Equal(t, "body { margin: 0; }\n.a { color: red; }", got.Style)
		assert.Equal(t, "let score = 0;\nconsole.log(\"ready\");", got.Script)
	})

	t.Run("ignores external scripts without inline body", func(t *testing.T) {
		t.Parallel()

		html := `<script src="https://cdn.example.com/lib.js"></script>
<script>start();</script>`

		got := aipage.ExtractEmbedded(html)

		assert.Equal(t, "start();", got.Script)
		assert.Empty(t, got.Style)
	})

	t.Run("tolerates quotes and angle brackets inside blocks", func(t *testing.T) {
		t.Parallel()

		html := `<SCRIPT>const tpl = '<div class="cell">' + "x > y" + '</div>';</SCRIPT>`

		got := aipage.ExtractEmbedded(html)

		assert.Equal(t, `const tpl = '<div class="cell">' + "x > y" + '</div>';`, got.Script)
	})

	t.Run("does not require surrounding markup", func(t *testing.T) {
		t.Parallel()

		got := aipage.ExtractEmbedded(`<p>unclosed <style>p{}</style>`)

		assert.Equal(t, "p{}", got.Style)
		assert.Empty(t, got.Script)
	})
}

func TestExtractBodyFragment(t *testing.T) {
	t.Parallel()

	t.Run("returns body content without style and script blocks", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><style>h1 { color: blue; }</style></head>
<body class="game">
  <h1>Snake</h1>
  <style>.x{}</style>
  <canvas id="c"></canvas>
  <script>draw();</script>
</body>
</html>`

		got := aipage.ExtractBodyFragment(html)

		assert.NotContains(t, got, "<style")
		assert.NotContains(t, got, "<script>")
		assert.Contains(t, got, "<h1>Snake</h1>")
		assert.Contains(t, got, `<canvas id="c"></canvas>`)
		assert.NotContains(t, got, "<body")
		assert.Equal(t, "<h1>", got[:4])
	})

	t.Run("falls back to whole document without body tags", func(t *testing.T) {
		t.Parallel()

		html := `  <div id="app"></div><script>go();</script><style>a{}</style>  `

		got := aipage.ExtractBodyFragment(html)

		assert.Equal(t, `<div id="app"></div>`, got)
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, aipage.ExtractBodyFragment(""))
	})

	t.Run("strips script blocks with attributes", func(t *testing.T) {
		t.Parallel()

		html := `<body><main></main><script type="module" defer>import x from "./x.js";</script></body>`

		got := aipage.ExtractBodyFragment(html)

		assert.Equal(t, "<main></main>", got)
	})
}

func TestExtractHead(t *testing.T) {
	t.Parallel()

	t.Run("returns head content", func(t *testing.T) {
		t.Parallel()

		head, ok := aipage.ExtractHead(`<html><head lang="en"><title>T</title></head><body></body></html>`)

		assert.True(t, ok)
		assert.Equal(t, "<title>T</title>", head)
	})

	t.Run("reports missing head", func(t *testing.T) {
		t.Parallel()

		_, ok := aipage.ExtractHead(`<body><p>no head</p></body>`)

		assert.False(t, ok)
	})
}
