// Package commands implements the samplers subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/samplers/internal/config"
	"github.com/Sumatoshi-tech/samplers/internal/observability"
	"github.com/Sumatoshi-tech/samplers/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every subcommand.
type GlobalOptions struct {
	ConfigPath string
	Seed       uint64
	Verbose    bool
	Quiet      bool
	LogJSON    bool
	NoColor    bool
}

// NewRootCommand builds the samplers command tree.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "samplers",
		Short: "Sample distributions and summarize numeric streams",
		Long: `samplers reads and writes newline-delimited numbers.

Generators:
  gaussian, poisson, exponential, uniform, binomial

Consumers:
  summarize, histogram, mean, variance`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default: .samplers.yaml in . or $HOME)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "generator seed (0 = random)")
	flags.BoolVarP(&opts.Verbose, "verbose", "V", false, "debug logging on stderr")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "only log errors")
	flags.BoolVar(&opts.LogJSON, "log-json", false, "log as JSON")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		NewGaussianCommand(),
		NewPoissonCommand(),
		NewExponentialCommand(),
		NewUniformCommand(),
		NewBinomialCommand(),
		NewSummarizeCommand(),
		NewHistogramCommand(),
		NewMeanCommand(),
		NewVarianceCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

func (opts *GlobalOptions) setup(cmd *cobra.Command) error {
	if opts.NoColor {
		color.NoColor = true
	}

	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Sampler.Seed = opts.Seed
	}

	if cmd.Flags().Changed("log-json") {
		cfg.Logging.JSON = opts.LogJSON
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Command = cmd.Name()
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.LogLevel = opts.logLevel(cfg.Logging.Level)
	obsCfg.ApplyEnv()

	providers, err := observability.Init(obsCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewCommandMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	cmd.SetContext(withRuntime(cmd.Context(), &Runtime{
		Config:   cfg,
		Logger:   providers.Logger,
		Tracer:   providers.Tracer,
		Metrics:  metrics,
		shutdown: providers.Shutdown,
	}))

	return nil
}

func (opts *GlobalOptions) logLevel(configured string) slog.Level {
	switch {
	case opts.Verbose:
		return slog.LevelDebug
	case opts.Quiet:
		return slog.LevelError
	default:
		return observability.ParseLevel(configured)
	}
}

// NewVersionCommand prints build metadata.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())

			return err
		},
	}
}
