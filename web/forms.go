package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"boilerref/domain/catalog"
)

// parseSelection reads the multi-select filter parameters. Each parameter
// may repeat; absence means no filtering on that dimension.
func parseSelection(values url.Values) catalog.Selection {
	return catalog.Selection{
		Stations:    cleanValues(values["station"]),
		BoilerTypes: cleanValues(values["type"]),
		Steels:      cleanValues(values["steel"]),
		Categories:  cleanValues(values["category"]),
		Systems:     cleanValues(values["system"]),
	}
}

func cleanValues(vs []string) []string {
	var out []string
	for _, v := range vs {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseBoilerForm builds a boiler from form fields. Field validation
// (unique, non-empty id) happens in the service.
func parseBoilerForm(values url.Values) catalog.Boiler {
	return catalog.Boiler{
		ID:         strings.TrimSpace(values.Get("id")),
		Name:       strings.TrimSpace(values.Get("name")),
		Station:    strings.TrimSpace(values.Get("station")),
		BoilerType: strings.TrimSpace(values.Get("boiler_type")),
		Location:   strings.TrimSpace(values.Get("location")),
		Parameters: strings.TrimSpace(values.Get("parameters")),
		Notes:      strings.TrimSpace(values.Get("notes")),
	}
}

// parseSurfaceForm builds a surface from form fields. Numeric fields left
// empty or zero mean "not provided" and parse to nil.
func parseSurfaceForm(values url.Values) (catalog.Surface, error) {
	s := catalog.Surface{
		Name:         strings.TrimSpace(values.Get("name")),
		Aliases:      splitAliases(values.Get("aliases")),
		Steel:        strings.TrimSpace(values.Get("steel")),
		Notes:        strings.TrimSpace(values.Get("notes")),
		Category:     strings.TrimSpace(values.Get("category")),
		System:       strings.TrimSpace(values.Get("system")),
		Section:      strings.TrimSpace(values.Get("section")),
		SurfaceGroup: strings.TrimSpace(values.Get("surface_group")),
	}

	var err error
	if s.Pressure, err = parseOptionalFloat(values.Get("pressure")); err != nil {
		return s, fmt.Errorf("pressure: %w", err)
	}
	if s.Temperature, err = parseOptionalFloat(values.Get("temperature")); err != nil {
		return s, fmt.Errorf("temperature: %w", err)
	}
	if s.OuterDiameter, err = parseOptionalFloat(values.Get("outer_diameter")); err != nil {
		return s, fmt.Errorf("outer_diameter: %w", err)
	}
	if s.WallThickness, err = parseOptionalFloat(values.Get("wall_thickness")); err != nil {
		return s, fmt.Errorf("wall_thickness: %w", err)
	}
	return s, nil
}

// splitAliases splits a comma-separated alias list, trimming whitespace and
// dropping empties.
func splitAliases(raw string) []string {
	var out []string
	for _, a := range strings.Split(raw, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// parseOptionalFloat treats empty and zero input as "not provided".
func parseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	if v == 0 {
		return nil, nil
	}
	return &v, nil
}
