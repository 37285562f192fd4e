// Package validate runs the DKGW section checks.
package validate

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dkgw-corpus/dkgw/internal/report"
	"github.com/dkgw-corpus/dkgw/internal/section"
)

// ErrSectionNotFound is returned by Run when the section path does not exist.
var ErrSectionNotFound = section.ErrNotFound

// Check is one stage of the validation pipeline.
type Check struct {
	Name string
	Run  func(*section.Section) *report.Report
}

// Option configures an Engine. Use With* functions to create Options.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	clock         func() time.Time
	checkEncoding bool
	logger        *zap.Logger
}

// WithClock sets the source of the current time used for year checks.
func WithClock(clock func() time.Time) Option {
	return func(o *engineOptions) { o.clock = clock }
}

// WithEncodingCheck appends the UTF-8 content check to the pipeline.
func WithEncodingCheck(enabled bool) Option {
	return func(o *engineOptions) { o.checkEncoding = enabled }
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// Engine runs a fixed, ordered set of checks against a section.
type Engine struct {
	opts engineOptions
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	o := engineOptions{
		clock:  time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return &Engine{opts: o}
}

// Checks returns the pipeline in execution order: prefix, auxiliary files,
// manifest, metadata fields, then encoding when enabled.
func (e *Engine) Checks() []Check {
	checks := []Check{
		{Name: NamePrefix, Run: CheckPrefix},
		{Name: NameAuxiliaryFiles, Run: CheckAuxiliaryFiles},
		{Name: NameManifest, Run: CheckManifest},
		{Name: NameMetadataFields, Run: func(s *section.Section) *report.Report {
			return CheckMetadataFields(s, e.opts.clock())
		}},
	}
	if e.opts.checkEncoding {
		checks = append(checks, Check{Name: NameEncoding, Run: CheckEncoding})
	}
	return checks
}

// Run validates the section at path and returns one report per check.
// The only error is a missing or unreadable section directory; every rule
// violation, including malformed metadata, is reported as a failure.
func (e *Engine) Run(path string) ([]*report.Report, error) {
	s, err := section.Open(path)
	if err != nil {
		return nil, err
	}
	return e.RunSection(s), nil
}

// RunSection runs every check against an opened section.
func (e *Engine) RunSection(s *section.Section) []*report.Report {
	log := e.opts.logger.With(zap.String("namespace", s.Namespace()))
	log.Debug("Validating section", zap.String("path", s.Path()))

	checks := e.Checks()
	reports := make([]*report.Report, 0, len(checks))
	for _, c := range checks {
		r := runGuarded(c, s)
		log.Debug("Check finished",
			zap.String("check", c.Name),
			zap.Int("passed", r.Passed),
			zap.Int("failed", r.Failed))
		reports = append(reports, r)
	}
	return reports
}

// runGuarded runs a check and converts a panic into a failure on its report.
func runGuarded(c Check, s *section.Section) (r *report.Report) {
	defer func() {
		if p := recover(); p != nil {
			r = report.New(c.Name)
			r.Fail(fmt.Sprintf("Check %q aborted: %v", c.Name, p))
		}
	}()

	r = c.Run(s)
	if r == nil {
		r = report.New(c.Name)
	}
	if r.Name == "" {
		r.Name = c.Name
	}
	return r
}
