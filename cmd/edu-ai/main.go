/*
Package main is the entry point for edu-ai CLI.

edu-ai keeps a learner's profile, progress, test results and topic history
in a local key-value store, and validates question-paper uploads.

Usage:
  edu-ai [command]

Available Commands:
  user        Show or set the learner profile
  progress    Show or update learning progress
  result      Record and list test results
  history     Manage the topic search history
  upload      Validate question-paper files against the upload limits
  clear       Delete the profile, progress and history
  config      Show or create the configuration file
  version     Show version information
  help        Help about any command

Examples:
  # Save a profile
  edu-ai user set --age 17 --location Kota --studying-for JEE

  # Record a topic and search for it later
  edu-ai history add "organic chemistry"
  edu-ai history search chem

  # Use the bbolt backend for one invocation
  edu-ai --backend bolt progress show
*/
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/khanglvm/edu-ai/internal/cli"
	"github.com/khanglvm/edu-ai/internal/kv"
	"github.com/khanglvm/edu-ai/internal/version"
)

// Version information (set via ldflags during build)
var (
	buildVersion = "dev"
	commit       = "none"
	date         = "unknown"
)

func main() {
	version.Version, version.Commit, version.Date = buildVersion, commit, date

	// A missing .env is normal.
	_ = godotenv.Load()

	app := cli.NewApp()

	rootCmd := &cobra.Command{
		Use:   "edu-ai",
		Short: "Local learner records for exam preparation",
		Long: `edu-ai stores a learner's profile, progress, test results and recent
topics in a local key-value store, and checks question-paper uploads
against count, size and type limits.

Storage backends:
  • sqlite - single-file database (default)
  • bolt   - bbolt key-value file
  • file   - JSON document
  • memory - nothing persisted, for trying things out

Settings come from ~/.edu-ai.json, EDU_AI_* environment variables
and a .env file in the working directory.`,
		Version:      version.GetVersion(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default ~/.edu-ai.json)")
	rootCmd.PersistentFlags().StringVar(&app.Backend, "backend", "", fmt.Sprintf("Storage backend %v", kv.Backends))
	rootCmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(cli.NewUserCmd(app))
	rootCmd.AddCommand(cli.NewProgressCmd(app))
	rootCmd.AddCommand(cli.NewResultCmd(app))
	rootCmd.AddCommand(cli.NewHistoryCmd(app))
	rootCmd.AddCommand(cli.NewUploadCmd(app))
	rootCmd.AddCommand(cli.NewClearCmd(app))
	rootCmd.AddCommand(cli.NewConfigCmd(app))
	rootCmd.AddCommand(cli.NewVersionCmd())

	err := rootCmd.Execute()
	if cerr := app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
