package catalog_test

import (
	"testing"

	"boilerref/domain/catalog"
)

func sampleRows() []catalog.Row {
	return []catalog.Row{
		{BoilerID: "b1", Station: "StationA", BoilerType: "Е-420", Steel: "Ст20", Surface: "Экономайзер", Category: "рабочая"},
		{BoilerID: "b2", Station: "StationB", BoilerType: "ТП-87", Steel: "12Х1МФ", Surface: "Пароперегреватель", System: "острый пар"},
		{BoilerID: "b3", Station: "StationA", Steel: "Ст20", Surface: "Экраны", Aliases: "НРЧ, СРЧ"},
	}
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	row := catalog.Row{Steel: "Ст20"}
	if !catalog.Matches(row, "ст20") {
		t.Error("lowercase Cyrillic query should match steel Ст20")
	}
	if !catalog.Matches(row, "СТ20") {
		t.Error("uppercase query should match")
	}
	if catalog.Matches(row, "х18н10т") {
		t.Error("unrelated query should not match")
	}
}

func TestMatchesSearchesAllFields(t *testing.T) {
	row := catalog.Row{
		BoilerName: "ТП-87",
		Aliases:    "ПП, КПП",
		Pressure:   f(13.8),
	}
	if !catalog.Matches(row, "кпп") {
		t.Error("alias list should be searchable")
	}
	if !catalog.Matches(row, "13.8") {
		t.Error("numeric fields should be searchable by decimal form")
	}
	if !catalog.Matches(row, "тп-87") {
		t.Error("boiler name should be searchable")
	}
}

func TestSearchEmptyQueryKeepsAll(t *testing.T) {
	rows := sampleRows()
	if got := catalog.Search(rows, "  "); len(got) != len(rows) {
		t.Fatalf("blank query should keep all rows, got %d", len(got))
	}
}

func TestFilterRowsEmptySelectionKeepsAll(t *testing.T) {
	rows := sampleRows()
	got := catalog.FilterRows(rows, catalog.Selection{Stations: []string{}})
	if len(got) != len(rows) {
		t.Fatalf("empty station selection must not exclude rows, got %d of %d", len(got), len(rows))
	}
}

func TestFilterRowsByStation(t *testing.T) {
	got := catalog.FilterRows(sampleRows(), catalog.Selection{Stations: []string{"StationA"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 StationA rows, got %d", len(got))
	}
	for _, row := range got {
		if row.Station != "StationA" {
			t.Errorf("unexpected station %q", row.Station)
		}
	}
}

func TestFilterRowsCombinesDimensions(t *testing.T) {
	sel := catalog.Selection{
		Stations: []string{"StationA"},
		Steels:   []string{"Ст20"},
	}
	got := catalog.FilterRows(sampleRows(), sel)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}

	sel.BoilerTypes = []string{"Е-420"}
	got = catalog.FilterRows(sampleRows(), sel)
	if len(got) != 1 || got[0].BoilerID != "b1" {
		t.Fatalf("expected only b1, got %+v", got)
	}
}

func TestFilterValuesDistinctInOrder(t *testing.T) {
	vals := catalog.FilterValues(sampleRows(), func(r catalog.Row) string { return r.Station })
	if len(vals) != 2 || vals[0] != "StationA" || vals[1] != "StationB" {
		t.Fatalf("expected [StationA StationB], got %v", vals)
	}

	steels := catalog.FilterValues(sampleRows(), func(r catalog.Row) string { return r.Steel })
	if len(steels) != 2 {
		t.Fatalf("duplicate steels should collapse, got %v", steels)
	}
}
