package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/aipage"
	"github.com/fwojciec/aipage/fs"
	"github.com/fwojciec/aipage/goquery"
	"github.com/fwojciec/aipage/htmltomarkdown"
	aihttp "github.com/fwojciec/aipage/http"
	"github.com/fwojciec/aipage/pipeline"
	aislog "github.com/fwojciec/aipage/slog"
	"github.com/fwojciec/aipage/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the local page store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("aipage"),
		kong.Description("Publish AI-generated artifacts as pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'aipage --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Command()

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	deps.ApplicationID = cli.App
	deps.TemplateID = cli.Template

	// Publishing against a remote page service needs no local database.
	if cli.Remote != "" && isPublish(cmd) {
		opts := []aihttp.Option{
			aihttp.WithTimeout(cli.Timeout),
			aihttp.WithRetries(aihttp.DefaultRetryDelays()...),
		}
		if cli.Token != "" {
			opts = append(opts, aihttp.WithToken(cli.Token))
		}
		deps.Pages = aihttp.NewClient(cli.Remote, opts...)
	} else {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set AIPAGE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		pages := sqlite.NewPageService(m.DB)
		deps.DB = m.DB
		deps.Pages = pages
		deps.Finder = pages
	}

	if logger != nil {
		deps.Pages = aislog.NewLoggingPageService(deps.Pages, logger)
	}

	deps.Converter = htmltomarkdown.NewConverter()
	deps.NewPageWriter = func(dir string) aipage.PageWriter {
		return fs.NewPageWriter(dir)
	}

	if isPublish(cmd) {
		reconciler := pipeline.NewReconciler(goquery.NewFontResolver())
		reconciler.Artifact = cli.Publish.Artifact

		var (
			rec aipage.Reconciler = reconciler
			pub aipage.Publisher  = pipeline.NewPublisher(deps.Pages, cli.App, cli.Template, cli.BaseURL)
		)
		if logger != nil {
			rec = aislog.NewLoggingReconciler(rec, logger)
			pub = aislog.NewLoggingPublisher(pub, logger)
		}

		deps.Pipeline = &pipeline.Pipeline{Reconciler: rec, Publisher: pub}
		deps.Workspace = func(id string) aipage.Workspace {
			ws := fs.ConversationWorkspace(cli.Root, id)
			if logger != nil {
				return aislog.NewLoggingWorkspace(ws, logger)
			}
			return ws
		}
	}

	return kongCtx.Run(deps)
}

// isPublish reports whether the parsed kong command is the publish command.
// Kong reports commands with their positional arguments, e.g. "publish <ids>".
func isPublish(cmd string) bool {
	return strings.HasPrefix(cmd, "publish")
}

func defaultDBPath() string {
	if path := os.Getenv("AIPAGE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "aipage.db"
	}
	dir := filepath.Join(home, ".aipage")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "aipage.db")
}
