package main

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/spf13/cobra"

	"strpred/internal/boundary"
	"strpred/internal/config"
	"strpred/internal/logging"
)

// app holds what PersistentPreRunE builds for the subcommands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	exporter *boundary.Exporter
}

// newRootCmd returns the root command with all subcommands wired in. lookup
// supplies environment variables; flags override them.
func newRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "strpred",
		Short:        "Evaluate string predicates and scan model files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f := outputFormat(cmd); f != "table" && f != "json" {
				return fmt.Errorf("--output: unknown format %q (want table or json)", f)
			}
			cfg, err := loadConfig(cmd, lookup)
			if err != nil {
				return err
			}
			logger, filter := logging.New(cmd.ErrOrStderr(), cfg)
			x, err := boundary.New(cfg, logger)
			if err != nil {
				return err
			}
			logger.Debug("configuration loaded", "component", "cli",
				"level", filter.DefaultLevel(), "maxStringLen", cfg.MaxStringLen, "onFault", cfg.FaultPolicy)
			a.cfg, a.logger, a.exporter = cfg, logger, x
			return nil
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w (arguments that begin with '-' must follow --)", err)
	})

	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format: table or json")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (or "+config.EnvLogLevel+" env)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json (or "+config.EnvLogFormat+" env)")
	rootCmd.PersistentFlags().String("max-string", "", "maximum argument length, e.g. 64KB (or "+config.EnvMaxString+" env)")
	rootCmd.PersistentFlags().String("on-fault", "", "boundary fault policy: sentinel or abort (or "+config.EnvOnFault+" env)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
	// version works even when the environment is misconfigured.
	versionCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }

	rootCmd.AddCommand(
		newNumberCmd(a),
		newContainsCmd(a),
		newIdentCmd(a),
		newPrefixCmd(a),
		newCountCmd(a),
		newScanCmd(a, runtime.NumCPU()),
		versionCmd,
	)

	return rootCmd
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.FromEnv(lookup)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		if cfg.LogLevel, err = config.ParseLevel(v); err != nil {
			return config.Config{}, fmt.Errorf("--log-level: %w", err)
		}
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("max-string") {
		v, _ := flags.GetString("max-string")
		n, err := config.ParseBytes(v)
		if err != nil {
			return config.Config{}, fmt.Errorf("--max-string: %w", err)
		}
		if n > math.MaxInt32 {
			return config.Config{}, fmt.Errorf("--max-string: %d exceeds %d", n, math.MaxInt32)
		}
		cfg.MaxStringLen = int(n)
	}
	if flags.Changed("on-fault") {
		v, _ := flags.GetString("on-fault")
		if cfg.FaultPolicy, err = config.ParseFaultPolicy(v); err != nil {
			return config.Config{}, fmt.Errorf("--on-fault: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

// outputFormat returns "json" or "table" from the --output flag.
func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}
