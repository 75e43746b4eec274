// Command viewstategen generates the view state classes of MVP view
// interfaces: for each view, a class that records the commands sent to the
// view and replays them when a view is attached again.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/NickyBoy89/viewstategen/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errFailedRoots is returned when some views could not be generated
var errFailedRoots = errors.New("some views failed")

type options struct {
	configPath string
	views      []string
	outputDir  string
	workers    int
	logLevel   string
	logFormat  string

	watch  bool
	dryRun bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailedRoots) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "viewstategen",
		Short:         "Generate view state classes for MVP view interfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.StringSliceVar(&opts.views, "view", nil, "generate a view state for this interface (repeatable)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "directory to write generated sources to")
	flags.IntVar(&opts.workers, "workers", 0, "number of files and views processed at once")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: auto, text or json")

	generate := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Write a view state for every view found in the sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, stderr)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cfg, opts, args, stdout)
		},
	}
	generate.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever a source file changes")
	generate.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print generated sources instead of writing them")

	resolveCmd := &cobra.Command{
		Use:   "resolve [paths...]",
		Short: "Print the resolved commands of every view found in the sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, stderr)
			if err != nil {
				return err
			}
			return runResolve(cmd.Context(), cfg, args, stdout)
		},
	}

	root.AddCommand(generate, resolveCmd)
	return root
}

// load reads the config and applies the flags that were set on top of it
func (opts *options) load(cmd *cobra.Command, stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("view") {
		cfg.Views = append(cfg.Views, opts.views...)
	}
	if flags.Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := setupLogging(cfg.LogLevel, cfg.LogFormat, stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, cfg *config.Config, opts *options, paths []string, stdout io.Writer) error {
	generator, err := NewGenerator(cfg)
	if err != nil {
		return err
	}

	report, err := generator.Generate(ctx, paths, opts.dryRun, stdout)
	if err != nil {
		return err
	}

	if !opts.watch {
		return reportErr(report)
	}

	log.WithField("paths", paths).Info("Watching for changes")
	return watch(ctx, paths, func() {
		if _, err := generator.Generate(ctx, paths, opts.dryRun, stdout); err != nil {
			log.WithError(err).Error("Failed to regenerate")
		}
	})
}

func runResolve(ctx context.Context, cfg *config.Config, paths []string, stdout io.Writer) error {
	generator, err := NewGenerator(cfg)
	if err != nil {
		return err
	}

	report, err := generator.Resolve(ctx, paths)
	if err != nil {
		return err
	}

	var views []any
	for _, result := range report.Results {
		if result.Err != nil {
			views = append(views, map[string]string{
				"name":  result.Root.QualifiedName,
				"error": result.Err.Error(),
			})
			continue
		}
		views = append(views, result.View)
	}

	encoder := yaml.NewEncoder(stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(views); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return reportErr(report)
}

func reportErr(report *Report) error {
	if report.Failures > 0 {
		log.WithField("failures", report.Failures).Error("Some views could not be generated")
		return fmt.Errorf("%w: %d", errFailedRoots, report.Failures)
	}
	return nil
}
