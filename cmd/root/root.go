// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/container"

	"github.com/spf13/cobra"
)

type containerKey struct{}

// Flags are the persistent flags shared by every command.
type Flags struct {
	ConfigFile string
	DataDir    string
	LogLevel   string
	LogFormat  string
}

// NewCommand builds the root command. The container is created in
// PersistentPreRunE, once per invocation, and handed to subcommands through
// the command context.
func NewCommand(opts ...container.Option) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "fintrack",
		Short: "A personal finance tracker for transactions, planned payments and cards.",
		Long: `fintrack records transactions, payment methods, planned payments,
appointments and cards in local files, and derives spending statistics
from the transaction ledger.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := Build(flags, opts...)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), containerKey{}, c))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.fintrack, .fintrack or .)")
	cmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", "", "Directory holding the data files")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "", "Log format (text, json)")
	return cmd
}

// Build loads the configuration, applies flag overrides and creates the
// container.
func Build(flags *Flags, opts ...container.Option) (*container.Container, error) {
	if _, err := config.LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.InitializeConfig(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.DataDir != "" {
		cfg.Data.Directory = flags.DataDir
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}

	return container.NewContainer(cfg, opts...)
}

// ContainerFrom returns the container created by the root command.
func ContainerFrom(cmd *cobra.Command) (*container.Container, error) {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(containerKey{}).(*container.Container); ok && c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("application container is not initialized")
}
