package catalog

import (
	"strconv"
	"strings"
)

// Selection holds the multi-select filter state of the dashboard.
// An empty slice on a dimension means "no filtering on that dimension",
// never "exclude everything".
type Selection struct {
	Stations    []string
	BoilerTypes []string
	Steels      []string
	Categories  []string
	Systems     []string
}

// Matches reports whether any field of the row contains the query,
// case-insensitively. Numeric fields participate via their decimal form.
func Matches(row Row, query string) bool {
	query = strings.ToLower(query)
	for _, v := range rowValues(row) {
		if v == "" {
			continue
		}
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// Search returns the rows matching the query. An empty query keeps all rows.
func Search(rows []Row, query string) []Row {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	var out []Row
	for _, row := range rows {
		if Matches(row, query) {
			out = append(out, row)
		}
	}
	return out
}

// FilterRows keeps rows whose value is a member of every non-empty
// selection set.
func FilterRows(rows []Row, sel Selection) []Row {
	var out []Row
	for _, row := range rows {
		if !member(sel.Stations, row.Station) {
			continue
		}
		if !member(sel.BoilerTypes, row.BoilerType) {
			continue
		}
		if !member(sel.Steels, row.Steel) {
			continue
		}
		if !member(sel.Categories, row.Category) {
			continue
		}
		if !member(sel.Systems, row.System) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// FilterValues returns the distinct non-empty values of one row dimension,
// in first-seen order, for building the filter widgets.
func FilterValues(rows []Row, get func(Row) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range rows {
		v := get(row)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// member reports set membership; an empty set admits everything.
func member(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// rowValues lists every searchable field of the row as a string.
// The alias display string is already space-joined enough for matching.
func rowValues(row Row) []string {
	return []string{
		row.BoilerID,
		row.BoilerName,
		row.Station,
		row.BoilerType,
		row.Location,
		row.Surface,
		row.Aliases,
		row.Steel,
		formatOptional(row.Pressure),
		formatOptional(row.Temperature),
		formatOptional(row.OuterDiameter),
		formatOptional(row.WallThickness),
		row.Category,
		row.System,
		row.Section,
		row.SurfaceGroup,
		row.Component,
		row.Notes,
	}
}

// FormatOptional renders an optional measurement for display and matching.
// nil means "not provided" and renders empty.
func FormatOptional(v *float64) string {
	return formatOptional(v)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
