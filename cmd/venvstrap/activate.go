package main

import (
	"github.com/aretw0/venvstrap/internal/activate"
	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Print the activation script",
	Long:  `Prints the activate.sh template venvstrap writes next to the environment, without touching the project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(activate.Content())
		return err
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
}
