package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkgw-corpus/dkgw/internal/estimate"
	"github.com/dkgw-corpus/dkgw/internal/render"
)

func newEstimateCmd(a *app) *cobra.Command {
	var (
		goal        int64
		sectionsDir string
	)

	cmd := &cobra.Command{
		Use:   "estimate <corpus-root>",
		Short: "Estimate the corpus word count",
		Long: `Estimate counts the whitespace-separated words of every content file in
each section under <corpus-root>/<sections-dir> and reports the totals as a
percentage of the word goal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Estimate
			if cmd.Flags().Changed("goal") {
				if goal <= 0 {
					return fmt.Errorf("invalid --goal %d: must be positive", goal)
				}
				cfg.Goal = goal
			}
			if cmd.Flags().Changed("sections-dir") {
				cfg.SectionsDir = sectionsDir
			}
			return a.runEstimate(args[0], cfg.Goal, cfg.SectionsDir)
		},
	}

	cmd.Flags().Int64Var(&goal, "goal", estimate.DefaultGoal, "Word goal")
	cmd.Flags().StringVar(&sectionsDir, "sections-dir", estimate.DefaultSectionsDir, "Subdirectory holding the sections")

	return cmd
}

func (a *app) runEstimate(root string, goal int64, sectionsDir string) error {
	a.logger.Info("STARTED")

	est := estimate.New(
		estimate.WithGoal(goal),
		estimate.WithSectionsDir(sectionsDir),
		estimate.WithLogger(a.logger),
	)
	stats, skipped, err := est.Run(root)
	if err != nil {
		return err
	}

	fmt.Fprint(a.stdout, render.NewWordCountView(a.stdout, stats, a.cfg.Output.Color).View())
	for _, m := range skipped.Messages {
		a.logger.Error(m)
	}

	a.recordEstimate(root, stats)
	a.logger.Info("DONE")
	return nil
}

// recordEstimate appends the snapshot to the history store when enabled.
func (a *app) recordEstimate(root string, stats *estimate.Stats) {
	store, err := a.openHistory()
	if err != nil {
		a.logger.Warn("History unavailable", zap.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	run, err := store.RecordEstimate(root, stats, a.now())
	if err != nil {
		a.logger.Warn("Could not record estimate", zap.Error(err))
		return
	}
	a.logger.Debug("Recorded estimate", zap.String("run", run.ID))
}
