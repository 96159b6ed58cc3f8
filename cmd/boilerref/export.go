package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"boilerref/app"
	"boilerref/config"
	"boilerref/domain/catalog"
)

var (
	exportOut      string
	exportQuery    string
	exportStations []string
	exportTypes    []string
	exportSteels   []string
	exportCategory []string
	exportSystems  []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the flattened catalog as CSV",
	Long: `Write the flattened catalog table as CSV, with the same search and
filter semantics as the dashboard.

Examples:
  boilerref export > boilers.csv
  boilerref export --out boilers.csv --station "ТЭЦ-1" --steel Ст20
  boilerref export --query экраны`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "substring search across all fields")
	exportCmd.Flags().StringSliceVar(&exportStations, "station", nil, "filter by station")
	exportCmd.Flags().StringSliceVar(&exportTypes, "type", nil, "filter by boiler type")
	exportCmd.Flags().StringSliceVar(&exportSteels, "steel", nil, "filter by steel grade")
	exportCmd.Flags().StringSliceVar(&exportCategory, "category", nil, "filter by category")
	exportCmd.Flags().StringSliceVar(&exportSystems, "system", nil, "filter by system")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}

	svc, cleanup, err := newCatalogService(cfg, zerolog.Nop())
	if err != nil {
		return err
	}
	defer cleanup()

	sel := catalog.Selection{
		Stations:    exportStations,
		BoilerTypes: exportTypes,
		Steels:      exportSteels,
		Categories:  exportCategory,
		Systems:     exportSystems,
	}
	rows, err := svc.Rows(context.Background(), exportQuery, sel)
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := app.WriteCSV(out, rows); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d row(s) to %s\n", len(rows), exportOut)
	}
	return nil
}
