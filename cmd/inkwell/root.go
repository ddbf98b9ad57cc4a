package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inkwell [props-file]",
	Short: "Run an inkwell editor in the terminal",
	Long: `Runs an editor whose props (value, language, theme, options, snippets)
come from a YAML or TOML props file. With --watch, edits to the file are
applied to the running editor.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptionsFromFlags(cmd, args)
		if err != nil {
			return err
		}
		return run(cmd.Context(), opts)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "inkwell:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.BoolP("watch", "w", false, "Reload the props file when it changes")
	f.String("theme", "", "Theme name (default: light or vs-dark, by terminal background)")
	f.String("language", "", "Language id, overriding the props file")
	f.Bool("read-only", false, "Open the editor read-only")
	f.StringSlice("theme-file", nil, "YAML/TOML theme definitions to load into the engine")
	f.StringSlice("snippet-file", nil, "YAML/TOML snippet definitions to load into the engine")
	f.StringSlice("extension", nil, "Lua extension scripts to run while loading the engine")
	f.String("log-file", "", "Write JSON logs to this file")
	f.String("log-level", "info", "Log level: debug, info, warn, error")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :2112")
}
