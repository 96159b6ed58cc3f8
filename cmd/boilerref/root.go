package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boilerref",
	Short: "Reference dashboard for industrial boiler heating surfaces",
	Long: `Boilerref serves a searchable reference catalog of boilers and their
heating surfaces, backed by a single JSON document.

Quick start:
  boilerref serve               # Start the dashboard
  boilerref import data.json    # Merge a catalog fragment from the CLI

Management:
  boilerref export    # Dump the catalog as CSV
  boilerref validate  # Check configuration and catalog document`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "boilerref.yaml", "config file path")
}
