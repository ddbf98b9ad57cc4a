package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inkwell",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "inkwell %s\n", inkwell.VersionTag())
	},
}

func init() {
	rootCmd.Version = inkwell.VersionTag()
	rootCmd.SetVersionTemplate("inkwell {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}
