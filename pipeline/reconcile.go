// Package pipeline normalizes AI-generated artifacts into page sources and
// publishes them. It coordinates reading a conversation's workspace,
// reconciling the artifacts found there, and saving and compiling the
// resulting page.
package pipeline

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/aipage"
	"github.com/google/uuid"
)

// Reconciler defaults.
const (
	DefaultArtifact      = "game"
	DefaultScratchPrefix = ".aipage-extract"
)

// Ensure Reconciler implements aipage.Reconciler at compile time.
var _ aipage.Reconciler = (*Reconciler)(nil)

// Reconciler reads the artifacts of a workspace and normalizes them into a
// single page source. It holds no per-call state and is safe for
// concurrent use with different workspaces.
type Reconciler struct {
	// Fonts resolves web-font links into @import directives. Optional.
	Fonts aipage.FontResolver

	// Artifact is the base name of the generated files, e.g. "game" for
	// game.html, game.css, game.js and game.zip.
	Artifact string

	// ScratchPrefix names the temporary directory archives are extracted
	// into. A random suffix is appended per extraction.
	ScratchPrefix string
}

// NewReconciler creates a Reconciler with default artifact names.
func NewReconciler(fonts aipage.FontResolver) *Reconciler {
	return &Reconciler{
		Fonts:         fonts,
		Artifact:      DefaultArtifact,
		ScratchPrefix: DefaultScratchPrefix,
	}
}

// Reconcile reads the workspace artifacts and normalizes them.
// Returns ENOTFOUND when the workspace holds no usable artifacts.
func (r *Reconciler) Reconcile(ctx context.Context, ws aipage.Workspace) (*aipage.Source, error) {
	bundle, err := r.ReadBundle(ctx, ws)
	if err != nil {
		return nil, err
	}
	return r.Normalize(bundle), nil
}

// ReadBundle reads the raw artifacts in priority order: an archive, then a
// markup file with optional style and script siblings.
// Returns ENOTFOUND if neither is present.
func (r *Reconciler) ReadBundle(ctx context.Context, ws aipage.Workspace) (*aipage.Bundle, error) {
	entries, err := ws.ListDir(ctx, ".")
	if aipage.ErrorCode(err) == aipage.ENOTFOUND {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "no files found")
	} else if err != nil {
		return nil, fmt.Errorf("listing workspace: %w", err)
	}

	files := fileSet(entries)
	name := r.artifact()

	switch {
	case files[name+".zip"]:
		return r.readArchive(ctx, ws, name+".zip")
	case files[name+".html"]:
		return readBundleFiles(ctx, ws, ".", name+".html", name+".css", name+".js")
	}
	return nil, aipage.Errorf(aipage.ENOTFOUND, "no files found")
}

// readArchive extracts archive into a scratch directory and reads the
// per-kind files from it. The scratch directory is removed on every path.
// A failed removal is returned when reading succeeded, so a scratch
// directory is never left behind silently.
func (r *Reconciler) readArchive(ctx context.Context, ws aipage.Workspace, archive string) (bundle *aipage.Bundle, err error) {
	scratch := r.scratchPrefix() + "-" + uuid.NewString()[:8]
	defer func() {
		if cerr := removeScratch(ctx, ws, scratch); cerr != nil && err == nil {
			bundle, err = nil, cerr
		}
	}()

	res, err := ws.Exec(ctx, []string{"unzip", "-o", "-q", archive, "-d", scratch})
	if err != nil {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "no files found: extracting %s: %v", archive, err)
	}
	if res.ExitCode != 0 {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "no files found: extracting %s: exit status %d: %s",
			archive, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	dir, entries, err := archiveRoot(ctx, ws, scratch)
	if err != nil {
		return nil, err
	}

	name := r.artifact()
	markup := pickFile(entries, ".html", name+".html", "index.html")
	if markup == "" {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "no files found: %s holds no HTML file", archive)
	}
	style := pickFile(entries, ".css", name+".css", "style.css", "styles.css")
	script := pickFile(entries, ".js", name+".js", "script.js", "main.js")

	return readBundleFiles(ctx, ws, dir, markup, style, script)
}

// removeScratch deletes the scratch directory. It runs even when ctx has
// been cancelled.
func removeScratch(ctx context.Context, ws aipage.Workspace, scratch string) error {
	res, err := ws.Exec(context.WithoutCancel(ctx), []string{"rm", "-rf", scratch})
	if err != nil {
		return fmt.Errorf("removing %s: %w", scratch, err)
	}
	if res != nil && res.ExitCode != 0 {
		return aipage.Errorf(aipage.EINTERNAL, "removing %s: exit status %d: %s",
			scratch, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// archiveRoot lists the extracted files. Archives that wrap everything in a
// single top-level directory are descended into.
func archiveRoot(ctx context.Context, ws aipage.Workspace, scratch string) (string, []aipage.DirEntry, error) {
	entries, err := ws.ListDir(ctx, scratch)
	if err != nil {
		return "", nil, fmt.Errorf("listing %s: %w", scratch, err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir {
			return scratch, entries, nil
		}
		if e.Name != "__MACOSX" {
			dirs = append(dirs, e.Name)
		}
	}
	if len(dirs) != 1 {
		return scratch, entries, nil
	}

	dir := path.Join(scratch, dirs[0])
	entries, err = ws.ListDir(ctx, dir)
	if err != nil {
		return "", nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return dir, entries, nil
}

// readBundleFiles reads markup from dir and, when named, its style and
// script siblings. Missing siblings become empty strings.
func readBundleFiles(ctx context.Context, ws aipage.Workspace, dir, markup, style, script string) (*aipage.Bundle, error) {
	html, err := ws.ReadFile(ctx, path.Join(dir, markup))
	if aipage.ErrorCode(err) == aipage.ENOTFOUND {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "no files found")
	} else if err != nil {
		return nil, fmt.Errorf("reading %s: %w", markup, err)
	}

	css, err := readOptional(ctx, ws, dir, style)
	if err != nil {
		return nil, err
	}
	js, err := readOptional(ctx, ws, dir, script)
	if err != nil {
		return nil, err
	}

	return &aipage.Bundle{Markup: html, Style: css, Script: js}, nil
}

func readOptional(ctx context.Context, ws aipage.Workspace, dir, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	content, err := ws.ReadFile(ctx, path.Join(dir, name))
	if aipage.ErrorCode(err) == aipage.ENOTFOUND {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return content, nil
}

// Normalize combines a bundle into a page source. Dedicated style and
// script files win over blocks extracted from the markup; extracted
// content is only used when the dedicated file is absent. Font imports
// from the markup head are always prepended to the style.
func (r *Reconciler) Normalize(b *aipage.Bundle) *aipage.Source {
	embedded := aipage.ExtractEmbedded(b.Markup)

	style := embedded.Style
	if strings.TrimSpace(b.Style) != "" {
		style = untag(b.Style, wrappedStyleRe, "</style")
	}

	script := embedded.Script
	if strings.TrimSpace(b.Script) != "" {
		script = untag(b.Script, wrappedScriptRe, "</script")
	}

	if r.Fonts != nil {
		style = prependImports(r.Fonts.ResolveFontImports(b.Markup), style)
	}

	return &aipage.Source{
		Markup: aipage.ExtractBodyFragment(b.Markup),
		Style:  style,
		Script: aipage.WrapForDeferredInit(script),
	}
}

func prependImports(imports, style string) string {
	switch {
	case imports == "":
		return style
	case style == "":
		return imports
	}
	return imports + "\n" + style
}

var (
	wrappedStyleRe  = regexp.MustCompile(`(?is)^<style\b[^>]*>(.*)</style\s*>$`)
	wrappedScriptRe = regexp.MustCompile(`(?is)^<script\b[^>]*>(.*)</script\s*>$`)
)

// untag returns the inner text of a dedicated file that is, as a whole, a
// single <style> or <script> block. Any other content is returned verbatim,
// including files that merely mention such tags in strings or comments.
func untag(content string, wrapped *regexp.Regexp, closeTag string) string {
	m := wrapped.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil || strings.Contains(strings.ToLower(m[1]), closeTag) {
		return content
	}
	return strings.TrimSpace(m[1])
}

func (r *Reconciler) artifact() string {
	if r.Artifact == "" {
		return DefaultArtifact
	}
	return r.Artifact
}

func (r *Reconciler) scratchPrefix() string {
	if r.ScratchPrefix == "" {
		return DefaultScratchPrefix
	}
	return r.ScratchPrefix
}

// fileSet returns the names of the regular files in entries.
func fileSet(entries []aipage.DirEntry) map[string]bool {
	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			files[e.Name] = true
		}
	}
	return files
}

// pickFile returns the first preferred name present in entries, falling
// back to the first file with the given extension.
func pickFile(entries []aipage.DirEntry, ext string, preferred ...string) string {
	files := fileSet(entries)
	for _, name := range preferred {
		if files[name] {
			return name
		}
	}
	for _, e := range entries {
		if !e.IsDir && strings.EqualFold(path.Ext(e.Name), ext) {
			return e.Name
		}
	}
	return ""
}
