package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faizmokh/rorg/internal/config"
	"github.com/faizmokh/rorg/internal/files"
	"github.com/faizmokh/rorg/internal/org"
	"github.com/faizmokh/rorg/internal/render"
	"github.com/faizmokh/rorg/internal/summary"
	"github.com/faizmokh/rorg/internal/ui"
	"github.com/faizmokh/rorg/internal/version"
)

// runTUI drives the Bubble Tea program; tests swap it out.
var runTUI = func(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

type rootOptions struct {
	verbose    bool
	format     string
	summary    bool
	completed  []string
	tui        bool
	configPath string
}

// NewRootCommand creates the rorg command: parse one org file and print or browse it.
func NewRootCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rorg <file>",
		Short: "Parse org-mode files into structured data and summarize tracked time.",
		Long: `rorg reads an org-mode outline and prints its notes as text, JSON or YAML.

Headings become nested notes with status keywords, tags, SCHEDULED/DEADLINE/CLOSED
stamps and LOGBOOK clock entries. Use --summary for time-tracking totals and
--tui to browse and edit the file interactively.`,
		Args:    cobra.ExactArgs(1),
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, cmd, manager, opts, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("rorg {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log parsing details to stderr")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: text, json or yaml (default from config, else text)")
	flags.BoolVarP(&opts.summary, "summary", "s", false, "include time-tracking summary statistics")
	flags.StringArrayVar(&opts.completed, "completed", nil, "status keyword counted as completed (repeatable, default DONE)")
	flags.BoolVarP(&opts.tui, "tui", "t", false, "browse and edit the file in the terminal UI")
	flags.StringVar(&opts.configPath, "config", "", "explicit config file")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, manager *files.Manager, opts *rootOptions, path string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	cfg, err := config.Load(config.Options{
		UserFile: manager.ConfigPath(),
		WorkDir:  workDir,
		File:     opts.configPath,
	})
	if err != nil {
		return err
	}
	logger.Debug("loaded config",
		"base", manager.BasePath(),
		"format", cfg.Format,
		"completed", cfg.CompletedKeywords,
	)

	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = opts.format
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	completed := cfg.CompletedKeywords
	if cmd.Flags().Changed("completed") {
		completed = opts.completed
	}

	content, err := files.Read(path)
	if err != nil {
		return err
	}
	logger.Debug("read org file",
		"path", path,
		"bytes", len(content),
		"lines", strings.Count(content, "\n"),
	)

	doc := org.ParseString(content)
	logger.Debug("parsed document", "top_level_notes", len(doc.Notes), "warnings", len(doc.Warnings))
	for _, w := range doc.Warnings {
		logger.Debug("parse warning", "line", w.Line, "heading", w.Heading, "err", w.Err)
	}

	if opts.tui {
		m := ui.NewModel(ctx, doc, ui.Options{
			Path:        path,
			StatusCycle: cfg.StatusCycle,
		})
		if err := runTUI(ctx, m); err != nil {
			return fmt.Errorf("run TUI: %w", err)
		}
		return nil
	}

	var sum *summary.Summary
	if opts.summary {
		s := summary.Aggregate(doc.Notes, summary.Options{Completed: completed, Now: time.Now()})
		sum = &s
	}

	out := cmd.OutOrStdout()
	r := render.Renderer{
		Format:    format,
		Color:     cfg.Color && out == os.Stdout && !color.NoColor,
		Completed: completed,
	}
	return r.Render(out, doc.Notes, sum)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, manager)
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/rorg/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
