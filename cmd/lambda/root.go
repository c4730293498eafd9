package main

import (
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/malphas-lang/lambda/internal/config"
	"github.com/malphas-lang/lambda/internal/diag"
	"github.com/malphas-lang/lambda/internal/logging"
	"github.com/malphas-lang/lambda/internal/pipeline"
)

// errReported is returned once diagnostics have already been printed, so
// main only sets the exit status.
var errReported = errors.New("errors reported")

// app carries the settings shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	noColor    bool
	maxSteps   int
	timeout    time.Duration

	cfg config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "lambda",
		Short: "Untyped lambda-calculus toolchain.",
		Long: `Lexes, parses and reduces untyped lambda-calculus programs.

Terms use λ or \ to introduce a lambda, for example:

	lambda run - <<< '(λx.λy.x) a b'
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	fs := root.PersistentFlags()
	fs.StringVar(&a.configPath, "config", "", "YAML config file (default $"+config.EnvVar+")")
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages to stderr")
	fs.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	fs.IntVar(&a.maxSteps, "max-steps", config.DefaultMaxSteps, "maximum reductions per program, 0 for no limit")
	fs.DurationVar(&a.timeout, "timeout", 0, "maximum reduction time per program, 0 for no limit")

	root.AddCommand(
		a.lexCmd(),
		a.parseCmd(),
		a.runCmd(),
		a.replCmd(),
		a.testCmd(),
	)
	return root
}

// setup loads the config file and applies explicitly set flags over it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.Path(a.configPath))
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("max-steps") {
		cfg.MaxSteps = a.maxSteps
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if a.verbose {
		cfg.Verbose = true
	}
	if a.noColor {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(a.stderr, cfg.Verbose)
	flags.VisitAll(func(f *pflag.Flag) {
		logging.Debugf("Flags: --%s=%v", f.Name, f.Value)
	})
	return nil
}

// options translates the loaded settings into a pipeline configuration.
func (a *app) options(filename string) pipeline.Options {
	return pipeline.Options{
		MaxSteps: a.cfg.MaxSteps,
		Timeout:  a.cfg.Timeout,
		Filename: filename,
	}
}

// report prints err as diagnostics when it has a diagnostic form and
// returns errReported in that case; other errors are returned unchanged.
func (a *app) report(err error, filename, text string) error {
	ds := pipeline.Diagnostics(err)
	if len(ds) == 0 {
		return err
	}
	f := diag.NewFormatter(a.stderr, a.cfg.Color)
	f.AddSource(filename, text)
	f.FormatAll(ds)
	return errReported
}
