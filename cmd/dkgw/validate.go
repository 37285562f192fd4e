package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkgw-corpus/dkgw/internal/render"
	"github.com/dkgw-corpus/dkgw/internal/report"
	"github.com/dkgw-corpus/dkgw/internal/section"
	"github.com/dkgw-corpus/dkgw/internal/validate"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		input         string
		checkEncoding bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "validate --input <section>",
		Short: "Check a corpus section for conformance",
		Long: `Validate runs the section checks in order: content file prefixes,
auxiliary files, the metadata manifest and the metadata fields. With
--check-encoding the content files are also checked for UTF-8.

The exit status is 1 when any check fails and validate.fail_on_error is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Validate
			if cmd.Flags().Changed("check-encoding") {
				cfg.CheckEncoding = checkEncoding
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			return a.runValidate(input, cfg.CheckEncoding, cfg.Format, cfg.FailOnError)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the section directory")
	cmd.Flags().BoolVar(&checkEncoding, "check-encoding", false, "Also check that content files are UTF-8")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (a *app) runValidate(input string, checkEncoding bool, format string, failOnError bool) error {
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}

	s, err := section.Open(input)
	if err != nil {
		return err
	}

	a.logger.Info("STARTED")
	engine := validate.New(
		validate.WithClock(a.now),
		validate.WithEncodingCheck(checkEncoding),
		validate.WithLogger(a.logger),
	)
	reports := engine.RunSection(s)

	switch format {
	case "json":
		err = render.WriteJSON(a.stdout, render.NewResult(s.Namespace(), reports))
	case "yaml":
		err = render.WriteYAML(a.stdout, render.NewResult(s.Namespace(), reports))
	default:
		render.PrintChecks(a.stdout, reports, a.cfg.Output.Color)
		render.LogSummary(a.logger, reports)
	}
	if err != nil {
		return err
	}

	tally := report.Summarize(reports)
	a.recordValidation(s.Namespace(), tally)
	a.logger.Info("DONE")

	if failOnError && !tally.OK() {
		return errChecksFailed
	}
	return nil
}

// recordValidation appends the tally to the history store when enabled.
// Failures are logged and do not change the outcome of the run.
func (a *app) recordValidation(namespace string, tally report.Tally) {
	store, err := a.openHistory()
	if err != nil {
		a.logger.Warn("History unavailable", zap.Error(err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	if _, err := store.RecordValidation(namespace, tally, a.now()); err != nil {
		a.logger.Warn("Could not record validation run", zap.Error(err))
	}
}
