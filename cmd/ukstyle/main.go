// Package main provides the ukstyle binary: a UK academic style assistant
// that reports register problems in prose and can rewrite it.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"academic_style/internal/app"
	"academic_style/internal/config"
	"academic_style/internal/ingest"
	"academic_style/internal/report"
	"academic_style/internal/style"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ukstyle"
)

const pasteHint = "Paste your text below. End input with Ctrl+D (Linux/macOS) or Ctrl+Z then Enter (Windows):\n"

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand and override the loaded config
// only when set on the command line.
type globalFlags struct {
	configPath string
	clean      bool
	noWrap     bool
	wrapWidth  int
	format     string
	dbPath     string
	workspace  bool
	logLevel   string
}

func rootCmd() *cobra.Command {
	var gf globalFlags

	cmd := &cobra.Command{
		Use:   "ukstyle [file]",
		Short: "UK academic style assistant",
		Long: `ukstyle analyses text for UK academic register problems:
contractions, informal or vague words, very long or very short
sentences, repeated sentence openings and first-person pronouns.

Text is read from the given file (.txt, .md, .html, .docx, .pdf)
or from standard input. With --clean a rewritten version follows
the report, with contractions expanded and informal terms annotated.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := setup(cmd, &gf)
			if err != nil {
				return err
			}
			return runAnalyse(cmd, svc, cfg, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&gf.configPath, "config", "c", "", "Config file path (YAML)")
	pf.BoolVar(&gf.clean, "clean", false, "Output a cleaned version of the text after the analysis")
	pf.BoolVar(&gf.noWrap, "nowrap", false, "Do not wrap rewritten text to a fixed width")
	pf.IntVar(&gf.wrapWidth, "wrap-width", 90, "Column width for rewritten text")
	pf.StringVar(&gf.format, "format", "text", "Report format (text, json)")
	pf.StringVar(&gf.dbPath, "db", "", "Record runs in this sqlite database")
	pf.BoolVar(&gf.workspace, "workspace", false, "Save a project report in the workspace directory")
	pf.StringVar(&gf.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(humaniseCmd(&gf), batchCmd(&gf), historyCmd(&gf))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func setup(cmd *cobra.Command, gf *globalFlags) (*app.Service, *config.Config, error) {
	cfg, err := config.Load(gf.configPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("clean") {
		cfg.Output.Clean = gf.clean
	}
	if flags.Changed("nowrap") {
		cfg.Output.NoWrap = gf.noWrap
	}
	if flags.Changed("wrap-width") {
		cfg.Output.WrapWidth = gf.wrapWidth
	}
	if flags.Changed("format") {
		cfg.Output.Format = gf.format
	}
	if flags.Changed("db") {
		cfg.Store.Path = gf.dbPath
	}
	if flags.Changed("workspace") {
		cfg.Workspace.Enabled = gf.workspace
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = gf.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: validate: %w", err)
	}

	logger := app.NewLogger(cfg.Log)
	svc, err := app.NewService(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded",
		slog.String("format", cfg.Output.Format),
		slog.Int("wrap_width", cfg.Output.WrapWidth),
		slog.Bool("clean", cfg.Output.Clean))
	return svc, cfg, nil
}

func runAnalyse(cmd *cobra.Command, svc *app.Service, cfg *config.Config, args []string) error {
	doc, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out, err := svc.Analyse(doc)
	if errors.Is(err, style.ErrEmptyInput) {
		fmt.Fprintln(cmd.OutOrStdout(), "No input text received.")
		return nil
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if strings.EqualFold(cfg.Output.Format, report.FormatJSON) {
		d := report.NewDocument(out.Source, out.Result)
		d.Cleaned = out.Cleaned
		return report.WriteJSON(w, d)
	}

	if err := report.WriteText(w, out.Result); err != nil {
		return err
	}
	if cfg.Output.Clean {
		fmt.Fprint(w, "\n=== Cleaned Version (suggested) ===\n\n")
		fmt.Fprintln(w, out.Cleaned)
	}
	return nil
}

// readInput parses the file argument, or standard input when there is none.
func readInput(cmd *cobra.Command, args []string) (*ingest.Parsed, error) {
	if len(args) == 1 {
		return ingest.ParseFile(args[0])
	}
	in := cmd.InOrStdin()
	if isTerminal(in) {
		fmt.Fprintln(cmd.ErrOrStderr(), pasteHint)
	}
	return ingest.ParseReader("stdin", in)
}
