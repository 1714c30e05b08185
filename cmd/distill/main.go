package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/ham-zax/distill"
	"github.com/ham-zax/distill/goquery"
	"github.com/ham-zax/distill/htmltomarkdown"
	"github.com/ham-zax/distill/pipeline"
	"github.com/ham-zax/distill/readability"
	distillslog "github.com/ham-zax/distill/slog"
	"github.com/ham-zax/distill/sqlite"
	"github.com/ham-zax/distill/trafilatura"
	"github.com/ham-zax/distill/xhtml"
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

	// SQLite database backing the result cache.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Cache     *sqlite.CacheService
	Processor distill.Processor
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
		kong.Name("distill"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'distill --help' to see available commands")
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
	deps.Verbose = cli.Verbose

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DISTILL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Cache, err = sqlite.NewCacheService(m.DB, sqlite.DefaultTTL)
	if err != nil {
		return fmt.Errorf("failed to open result cache: %w", err)
	}
	deps.Cache = m.Cache

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Diag = pipeline.NewDiagnosticLog(0)

	proc := &pipeline.Pipeline{
		Parse:     parseTree,
		Extractor: distillslog.NewLoggingExtractor(readability.NewExtractor(), logger),
		Converter: htmltomarkdown.NewConverter(),
		Cache:     m.Cache,
		Plugins: []distill.SitePlugin{
			goquery.NewWikiPlugin(),
			goquery.NewDocsPlugin(),
		},
		Recovery: pipeline.DefaultRegistry(trafilatura.NewExtractor()),
		Diag:     deps.Diag,
	}
	m.Processor = distillslog.NewLoggingProcessor(proc, logger)
	deps.Processor = m.Processor

	return kongCtx.Run(deps)
}

func parseTree(html string) (distill.Node, error) {
	return xhtml.Parse(html)
}

func defaultDBPath() string {
	if path := os.Getenv("DISTILL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "distill.db"
	}
	dir := filepath.Join(home, ".distill")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "distill.db")
}
