package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkgw-corpus/dkgw/internal/config"
	"github.com/dkgw-corpus/dkgw/internal/history"
	"github.com/dkgw-corpus/dkgw/internal/logging"
)

// errChecksFailed signals a validation run with failures. The failures have
// already been reported, so only the exit status remains.
var errChecksFailed = errors.New("validation checks failed")

// app carries the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// Global flags
	configPath  string
	historyPath string
	verbose     bool
	noColor     bool

	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
		logger: zap.NewNop(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dkgw",
		Short: "Validate and measure the Danish Gigaword corpus",
		Long: `dkgw checks corpus sections for structural and metadata conformance
and estimates the corpus word count against the one billion word goal.

A section is a directory named after its namespace holding content files
<namespace>_<id>, a metadata file <namespace>.jsonl and a LICENSE file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: user and project config)")
	cmd.PersistentFlags().StringVar(&a.historyPath, "history", "", "Record runs to this SQLite file (bare --history uses "+history.DefaultPath()+")")
	cmd.PersistentFlags().Lookup("history").NoOptDefVal = history.DefaultPath()
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newEstimateCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd(a))
	return cmd
}

// setup loads configuration, applies global flag overrides and builds the logger.
func (a *app) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.historyPath != "" {
		cfg.History.Path = a.historyPath
	}
	if a.noColor {
		cfg.Output.Color = false
	}
	a.cfg = cfg

	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Verbose: a.verbose,
		File:    cfg.Log.File,
		Writer:  a.stderr,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// openHistory opens the configured history store. It returns nil when
// recording is disabled.
func (a *app) openHistory() (history.Store, error) {
	if a.cfg.History.Path == "" {
		return nil, nil
	}
	db, err := history.Open(a.cfg.History.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return db, nil
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Execute runs the root command
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
