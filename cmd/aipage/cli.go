package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/aipage"
	"github.com/fwojciec/aipage/pipeline"
	"github.com/fwojciec/aipage/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	ApplicationID string
	TemplateID    string

	Pages     aipage.PageService
	Finder    aipage.PageFinder
	Converter aipage.Converter
	Pipeline  *pipeline.Pipeline

	// Workspace returns the workspace holding a conversation's artifacts.
	Workspace func(id string) aipage.Workspace

	// NewPageWriter returns a writer exporting compiled pages below dir.
	NewPageWriter func(dir string) aipage.PageWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root     string        `type:"path" default:"." env:"AIPAGE_ROOT" help:"Directory holding one workspace per conversation"`
	Remote   string        `env:"AIPAGE_REMOTE" help:"Base URL of a remote page service (default: local database)"`
	Token    string        `env:"AIPAGE_TOKEN" help:"Bearer token for the remote page service"`
	Timeout  time.Duration `default:"30s" help:"Remote page service request timeout"`
	BaseURL  string        `name:"base-url" env:"AIPAGE_BASE_URL" default:"http://localhost:3000" help:"Public base URL of published pages"`
	App      string        `env:"AIPAGE_APP" default:"default" help:"Application ID pages are published to"`
	Template string        `env:"AIPAGE_TEMPLATE" default:"ai" help:"Template ID pages are published to"`
	Debug    bool          `help:"Log collaborator calls to stderr"`

	Publish PublishCmd `cmd:"" help:"Publish conversation artifacts as pages"`
	Show    ShowCmd    `cmd:"" help:"Show a published page"`
	Export  ExportCmd  `cmd:"" help:"Export a compiled page to a directory"`
}

// PublishCmd is the "publish" subcommand.
type PublishCmd struct {
	IDs         []string `arg:"" name:"ids" help:"Conversation IDs"`
	Title       string   `help:"Page title (default: AI Generated Page)"`
	Artifact    string   `default:"game" help:"Artifact base name looked up in each workspace"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent publish limit"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID       string `arg:"" help:"Conversation ID"`
	Markdown bool   `xor:"format" help:"Show a markdown preview of the page markup"`
	Source   bool   `xor:"format" help:"Show the saved source parts"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID  string `arg:"" help:"Conversation ID"`
	Dir string `arg:"" type:"path" help:"Destination directory"`
}
