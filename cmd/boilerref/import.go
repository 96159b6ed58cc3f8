package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"boilerref/app"
	"boilerref/config"
)

var importActor string

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Merge a catalog fragment into the catalog",
	Long: `Merge an exported catalog fragment into the catalog document.

Boilers are matched by id, surfaces by name; records already present are
skipped. The merge is atomic: a malformed file changes nothing.

Examples:
  boilerref import colleagues_boilers.json
  boilerref import --actor petrov new_station.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importActor, "actor", "cli", "name recorded in the audit journal")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read fragment: %w", err)
	}

	svc, cleanup, err := newCatalogService(cfg, zerolog.Nop())
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := app.WithActor(context.Background(), importActor)
	added, err := svc.Import(ctx, data, filepath.Base(args[0]))
	if err != nil {
		return err
	}

	fmt.Printf("merged %s: %d record(s) added\n", args[0], added)
	return nil
}
