package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/traindeck/traindeck/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "traindeck",
	Short: "Traindeck - Build and dispatch distributed-training job specs",
	Long: `Traindeck builds declarative role specs for elastic distributed
training jobs: it assembles the torch elastic launcher argument list from
your entrypoint and elastic options, resolves placeholder macros at
submission time, and keeps a local log of everything dispatched.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		jsonOut, _ := cmd.Flags().GetBool("log-json")
		log.Init(log.Config{
			Level:      log.Level(level),
			JSONOutput: jsonOut,
		})
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Traindeck version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("data-dir", defaultDataDir(), "Directory for the local submission log")

	// Subcommands are registered by their own files' init functions
}

// defaultDataDir keeps the submission log under the user's home directory
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./traindeck-data"
	}
	return filepath.Join(home, ".traindeck")
}
