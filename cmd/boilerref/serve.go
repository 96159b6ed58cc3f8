package main

import (
	"github.com/spf13/cobra"

	"boilerref/bootstrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reference dashboard server",
	Long: `Start the boilerref dashboard server.

The server will:
  - Load configuration from boilerref.yaml (or --config)
  - Or run from BOILERREF_* environment variables alone
  - Serve the dashboard, the JSON API and the CSV export
  - Watch the config file and reload the log level on change

Environment variables (for Docker deployments):
  BOILERREF_SERVER_PORT    - Server port (default: 8080)
  BOILERREF_CATALOG_PATH   - Catalog document path (default: data/boilers_reference.json)
  BOILERREF_AUDIT_ENABLED  - Enable the SQLite mutation journal
  BOILERREF_LOG_LEVEL      - Log level: debug, info, warn, error

Examples:
  boilerref serve
  boilerref serve --config /etc/boilerref/config.yaml
  BOILERREF_SERVER_PORT=9090 boilerref serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(cfgFile)
	if err != nil {
		return err
	}
	return app.Run()
}
