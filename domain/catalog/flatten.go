package catalog

import "strings"

// Row is one flattened table entry: boiler context merged with a single
// surface, or with a single component when the surface is broken down.
type Row struct {
	BoilerID      string   `json:"boiler_id"`
	BoilerName    string   `json:"boiler_name,omitempty"`
	Station       string   `json:"station,omitempty"`
	BoilerType    string   `json:"boiler_type,omitempty"`
	Location      string   `json:"location,omitempty"`
	Surface       string   `json:"surface"`
	Aliases       string   `json:"aliases,omitempty"`
	Steel         string   `json:"steel,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	OuterDiameter *float64 `json:"outer_diameter,omitempty"`
	WallThickness *float64 `json:"wall_thickness,omitempty"`
	Category      string   `json:"category,omitempty"`
	System        string   `json:"system,omitempty"`
	Section       string   `json:"section,omitempty"`
	SurfaceGroup  string   `json:"surface_group,omitempty"`
	Component     string   `json:"component,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// Flatten expands the nested catalog into table rows. Each surface yields
// one row; a surface with components yields one row per component instead,
// with component fields overriding the surface's and the surface value as
// fallback where the component leaves a field empty.
func Flatten(c *Catalog) []Row {
	var rows []Row
	for bi := range c.Boilers {
		b := &c.Boilers[bi]
		for si := range b.Surfaces {
			s := &b.Surfaces[si]
			base := Row{
				BoilerID:      b.ID,
				BoilerName:    b.Name,
				Station:       b.Station,
				BoilerType:    b.BoilerType,
				Location:      b.Location,
				Surface:       s.Name,
				Aliases:       strings.Join(s.Aliases, ", "),
				Steel:         s.Steel,
				Pressure:      s.Pressure,
				Temperature:   s.Temperature,
				OuterDiameter: s.OuterDiameter,
				WallThickness: s.WallThickness,
				Category:      s.Category,
				System:        s.System,
				Section:       s.Section,
				SurfaceGroup:  s.SurfaceGroup,
				Notes:         s.Notes,
			}
			if len(s.Components) == 0 {
				rows = append(rows, base)
				continue
			}
			for ci := range s.Components {
				rows = append(rows, componentRow(base, &s.Components[ci]))
			}
		}
	}
	return rows
}

// componentRow applies a component's leaf fields on top of the surface row.
func componentRow(base Row, comp *Component) Row {
	row := base
	row.Component = comp.Description
	row.Steel = fallback(comp.Steel, base.Steel)
	row.Section = fallback(comp.Section, base.Section)
	row.Notes = fallback(comp.Notes, base.Notes)
	if comp.Pressure != nil {
		row.Pressure = comp.Pressure
	}
	if comp.Temperature != nil {
		row.Temperature = comp.Temperature
	}
	if comp.OuterDiameter != nil {
		row.OuterDiameter = comp.OuterDiameter
	}
	if comp.WallThickness != nil {
		row.WallThickness = comp.WallThickness
	}
	return row
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
