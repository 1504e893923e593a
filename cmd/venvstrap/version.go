package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/venvstrap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of venvstrap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "venvstrap version %s\n", strings.TrimSpace(venvstrap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
