package app

import (
	"encoding/csv"
	"fmt"
	"io"

	"boilerref/domain/catalog"
)

// csvHeader is the fixed column order of the CSV export. It mirrors the
// dashboard table so a spreadsheet opens with the same layout.
var csvHeader = []string{
	"boiler_id",
	"boiler_name",
	"station",
	"boiler_type",
	"location",
	"surface",
	"aliases",
	"steel",
	"pressure",
	"temperature",
	"outer_diameter",
	"wall_thickness",
	"category",
	"system",
	"section",
	"surface_group",
	"component",
	"notes",
}

// WriteCSV renders the rows as CSV with a header line. Optional numeric
// fields render empty when not provided.
func WriteCSV(w io.Writer, rows []catalog.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.BoilerID,
			row.BoilerName,
			row.Station,
			row.BoilerType,
			row.Location,
			row.Surface,
			row.Aliases,
			row.Steel,
			catalog.FormatOptional(row.Pressure),
			catalog.FormatOptional(row.Temperature),
			catalog.FormatOptional(row.OuterDiameter),
			catalog.FormatOptional(row.WallThickness),
			row.Category,
			row.System,
			row.Section,
			row.SurfaceGroup,
			row.Component,
			row.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
