package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"academic_style/internal/app"
	"academic_style/internal/report"
)

func humaniseCmd(gf *globalFlags) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "humanise [file]",
		Short: "Rewrite text into a natural UK academic tone",
		Long: `humanise collapses whitespace, applies light rephrasings and
occasionally opens a sentence with an academic connector such as
"Moreover," or "However,". Use --seed for a reproducible rewrite.`,
		Aliases: []string{"humanize"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := setup(cmd, gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Humanise.Seed = seed
			}

			doc, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := svc.Humanise(doc.Text, nil)
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No input text received.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), "\n--- Humanised (UK Academic Tone) ---\n\n")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for connector insertion (0 picks one)")
	return cmd
}

func batchCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <pattern>...",
		Short: "Analyse many documents matched by glob patterns",
		Long: `batch expands each pattern (with ** support) and analyses every
matching document on a worker pool. Reports are printed in the order
the files were matched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := setup(cmd, gf)
			if err != nil {
				return err
			}
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			return runBatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), svc, cfg.Output.Format, paths)
		},
	}
}

func historyCmd(gf *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := setup(cmd, gf)
			if err != nil {
				return err
			}
			runs, err := svc.History(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tWHEN\tSENTENCES\tISSUES\tSOURCE")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.ID[:8],
					humanize.Time(r.CreatedAt),
					humanize.Comma(int64(r.SentenceCount)),
					humanize.Comma(int64(r.IssueCount)),
					r.Source)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}

func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]struct{}{}
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %s", strings.Join(patterns, ", "))
	}
	return paths, nil
}

func runBatch(stdout, stderr io.Writer, svc *app.Service, format string, paths []string) error {
	outcomes, errs := svc.Batch(paths)

	if strings.EqualFold(format, report.FormatJSON) {
		docs := make([]report.Document, 0, len(outcomes))
		for _, out := range outcomes {
			if out == nil {
				continue
			}
			d := report.NewDocument(out.Source, out.Result)
			d.Cleaned = out.Cleaned
			docs = append(docs, d)
		}
		if err := report.WriteJSON(stdout, docs...); err != nil {
			return err
		}
	} else {
		for _, out := range outcomes {
			if out == nil {
				continue
			}
			fmt.Fprintf(stdout, "##### %s\n\n", out.Source)
			if err := report.WriteText(stdout, out.Result); err != nil {
				return err
			}
			if out.Cleaned != "" {
				fmt.Fprint(stdout, "\n=== Cleaned Version (suggested) ===\n\n")
				fmt.Fprintln(stdout, out.Cleaned)
			}
			fmt.Fprintln(stdout)
		}
	}

	for _, err := range errs {
		fmt.Fprintf(stderr, "skipped: %v\n", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(errs), len(paths))
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
