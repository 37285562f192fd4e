// Package render presents validation results and word-count statistics.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/dkgw-corpus/dkgw/internal/report"
)

// Result is the machine-readable outcome of validating one section.
type Result struct {
	Section string           `json:"section" yaml:"section"`
	Passed  int              `json:"passed" yaml:"passed"`
	Failed  int              `json:"failed" yaml:"failed"`
	Total   int              `json:"total" yaml:"total"`
	Checks  []*report.Report `json:"checks" yaml:"checks"`
}

// NewResult builds the result document for a validation run.
func NewResult(section string, reports []*report.Report) Result {
	t := report.Summarize(reports)
	return Result{
		Section: section,
		Passed:  t.Passed,
		Failed:  t.Failed,
		Total:   t.Total(),
		Checks:  reports,
	}
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the result as YAML.
func WriteYAML(w io.Writer, r Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result as YAML: %w", err)
	}
	return enc.Close()
}

// LogSummary logs the pass/fail totals, the names of passed and failed
// checks, then one error line per failure message.
func LogSummary(logger *zap.Logger, reports []*report.Report) {
	t := report.Summarize(reports)
	total := t.Total()

	logger.Info(fmt.Sprintf("Tests passed: %d of %d", t.Passed, total))
	logger.Info(fmt.Sprintf("Tests failed: %d of %d", t.Failed, total))
	if len(t.PassedChecks) > 0 {
		logger.Info("Checks passed: " + strings.Join(t.PassedChecks, ", "))
	}
	if len(t.FailedChecks) > 0 {
		logger.Info("Checks failed: " + strings.Join(t.FailedChecks, ", "))
	}
	for _, m := range t.Messages {
		logger.Error(m)
	}
}

// PrintChecks writes one status line per check, marked with a colored
// symbol when useColor is set.
func PrintChecks(w io.Writer, reports []*report.Report, useColor bool) {
	for _, r := range reports {
		symbol, attr := "✓", color.FgGreen
		if !r.OK() {
			symbol, attr = "✗", color.FgRed
		}
		printStatus(w, symbol, fmt.Sprintf("%s (%d passed, %d failed)", r.Name, r.Passed, r.Failed), attr, useColor)
	}
}

// printStatus prints a status line, coloring the symbol when useColor is set.
func printStatus(w io.Writer, symbol, message string, colorAttr color.Attribute, useColor bool) {
	c := color.New(colorAttr)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
