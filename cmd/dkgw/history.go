package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkgw-corpus/dkgw/internal/history"
	"github.com/dkgw-corpus/dkgw/internal/render"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit    int
		sections bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `History lists validation and estimation runs recorded with --history
or history.path, newest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(limit, sections)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&sections, "sections", false, "Include per-section counts of estimation runs")

	return cmd
}

func (a *app) runHistory(limit int, sections bool) error {
	store, err := a.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("no history file configured (use --history or history.path)")
	}
	defer store.Close()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.stdout, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintln(a.stdout, formatRun(r))
		if !sections || r.Kind != history.KindEstimate {
			continue
		}
		counts, err := store.SectionCounts(r.ID)
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Fprintf(a.stdout, "    %s: %s\n", c.Section, render.FormatNumber(c.Words))
		}
	}
	return nil
}

func formatRun(r history.Run) string {
	when := r.StartedAt.Local().Format(time.DateTime)
	switch r.Kind {
	case history.KindEstimate:
		return fmt.Sprintf("%s  %-8s  %s  words: %s of %s", when, r.Kind, r.Subject,
			render.FormatNumber(r.Words), render.FormatNumber(r.Goal))
	default:
		return fmt.Sprintf("%s  %-8s  %s  passed: %d  failed: %d", when, r.Kind, r.Subject, r.Passed, r.Failed)
	}
}
