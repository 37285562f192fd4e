package estimate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/dkgw-corpus/dkgw/internal/report"
)

// DefaultSectionsDir is the corpus subdirectory holding the sections.
const DefaultSectionsDir = "sektioner"

// ReportName names the report of files skipped during counting.
const ReportName = "Word count"

// Estimator walks a corpus and counts words per section.
type Estimator struct {
	goal        int64
	sectionsDir string
	logger      *zap.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithGoal sets the word goal.
func WithGoal(goal int64) Option {
	return func(e *Estimator) { e.goal = goal }
}

// WithSectionsDir sets the corpus subdirectory that holds the sections.
func WithSectionsDir(dir string) Option {
	return func(e *Estimator) { e.sectionsDir = dir }
}

// WithLogger sets the logger for progress messages.
func WithLogger(l *zap.Logger) Option {
	return func(e *Estimator) { e.logger = l }
}

// New creates an Estimator.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		goal:        DefaultGoal,
		sectionsDir: DefaultSectionsDir,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.sectionsDir == "" {
		e.sectionsDir = DefaultSectionsDir
	}
	return e
}

// Run counts the words of every section under <root>/<sectionsDir>.
// Hidden entries and plain files are skipped. Within a section only
// extensionless files named <namespace>_* are counted. Files that are not
// valid UTF-8 are skipped and recorded as failures on the returned report.
func (e *Estimator) Run(root string) (*Stats, *report.Report, error) {
	sectionsPath := filepath.Join(root, e.sectionsDir)
	entries, err := os.ReadDir(sectionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read sections directory: %w", err)
	}

	stats := NewStats(e.goal)
	rep := report.New(ReportName)

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		namespace := entry.Name()
		e.logger.Info("Counting in section", zap.String("section", namespace))

		if err := e.countSection(stats, rep, filepath.Join(sectionsPath, namespace), namespace); err != nil {
			return nil, nil, err
		}

		pct, _ := stats.PercentageOfGoal(namespace)
		e.logger.Info(fmt.Sprintf("\tSection: %.2f", pct))
		e.logger.Info(fmt.Sprintf("\tTotal: %.2f", stats.TotalPercentageOfGoal()))
	}

	return stats, rep, nil
}

// countSection adds the words of one section's content files to stats.
func (e *Estimator) countSection(stats *Stats, rep *report.Report, dir, namespace string) error {
	// Sections without content still appear in the stats.
	if err := stats.AddToSection(namespace, 0); err != nil {
		return err
	}

	files, err := contentFiles(dir, namespace)
	if err != nil {
		return err
	}

	for _, name := range files {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		if !utf8.Valid(data) {
			msg := fmt.Sprintf("File %s is not UTF-8 encoded", path)
			e.logger.Error(msg)
			rep.Fail(msg)
			continue
		}
		if err := stats.AddToSection(namespace, CountWords(string(data))); err != nil {
			return err
		}
		rep.Pass(1)
	}
	return nil
}

// contentFiles returns the sorted names of extensionless regular files in
// dir that match <namespace>_*.
func contentFiles(dir, namespace string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), escapeGlob(namespace)+"_*")
	if err != nil {
		return nil, fmt.Errorf("glob section %s: %w", namespace, err)
	}

	var files []string
	for _, m := range matches {
		if filepath.Ext(m) != "" {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, m))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// CountWords returns the number of whitespace-separated tokens in text.
func CountWords(text string) int64 {
	return int64(len(strings.Fields(text)))
}

// escapeGlob quotes glob metacharacters in a literal path segment.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
