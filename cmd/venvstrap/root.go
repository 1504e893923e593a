package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/venvstrap/internal/cli"
	"github.com/aretw0/venvstrap/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "venvstrap",
	Short: "venvstrap bootstraps a Python virtual environment for the current project",
	Long: `venvstrap ensures python is installed, creates a "venv" directory with virtualenv
(falling back to python -m venv), writes activate.sh and installs the project in
editable mode when setup.py or pyproject.toml is present.

Enter the environment afterwards with:

  . activate.sh`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.Options{}
		opts.Dir, _ = cmd.Flags().GetString("dir")
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Remove, _ = cmd.Flags().GetBool("remove")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.NoBanner, _ = cmd.Flags().GetBool("no-banner")
		opts.MetricsFile, _ = cmd.Flags().GetString("metrics-file")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return cli.RunInstall(sc, opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !domain.IsGuardViolation(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Project directory containing setup.py or pyproject.toml")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: venvstrap.yaml in the project directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every command and state change to stderr")

	rootCmd.Flags().Bool("remove", false, "Remove the virtual environment")
	rootCmd.Flags().Bool("no-banner", false, "Do not print the banner")
	rootCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
}
