package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-textpipeline/pkg/config"
	"github.com/askiada/go-textpipeline/pkg/logging"
	"github.com/askiada/go-textpipeline/pkg/pipeline"
	"github.com/askiada/go-textpipeline/pkg/pipeline/measure"
	"github.com/askiada/go-textpipeline/pkg/rules"
)

// configEnv names the configuration file when --config is not given.
const configEnv = "TEXTPIPE_CONFIG"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textpipe",
		Short: "Reformat text with named pipelines",
		Long: `textpipe runs text through the pipelines described in its configuration file.
Each pipeline is an ordered list of rules such as width normalization or
paragraph-number formatting.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "configuration file (default $"+configEnv+" or "+config.DefaultPath()+")")
	cmd.PersistentFlags().String("env-file", "", "dotenv file loaded before anything else")
	cmd.PersistentFlags().String("log-type", logging.Tint, "logging type: json, text or tint")
	cmd.PersistentFlags().String("log-level", "warn", "logging level: debug, info, warn, error")

	cmd.AddCommand(NewApplyCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewDescribeCmd())
	cmd.AddCommand(NewDrawCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}

	if envFile != "" {
		err = godotenv.Load(envFile)
		if err != nil {
			return errors.Wrapf(err, "unable to load %s", envFile)
		}
	}

	logType, err := cmd.Flags().GetString("log-type")
	if err != nil {
		return err
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}

	return logging.Initialize(logType, logLevel)
}

func configPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", err
	}

	if path != "" {
		return path, nil
	}

	if path = os.Getenv(configEnv); path != "" {
		return path, nil
	}

	return config.DefaultPath(), nil
}

// newRegistry builds a registry holding the configured pipelines and recording their timings.
func newRegistry(cmd *cobra.Command) (*pipeline.Registry, measure.Measure, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	msr := measure.NewDefaultMeasure()

	opts := append(cfg.RegistryOptions(),
		pipeline.WithLogger(slog.Default()),
		pipeline.WithObserver(measure.PipelineMeasure(msr)),
	)

	reg, err := pipeline.New(opts...)
	if err != nil {
		return nil, nil, err
	}

	err = reg.Use(cfg.Plugin(rules.DefaultCatalog()))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable to install pipelines from %s", path)
	}

	return reg, msr, nil
}
