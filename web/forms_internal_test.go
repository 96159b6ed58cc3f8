package web

import (
	"net/url"
	"testing"
)

func TestParseOptionalFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"0", nil, false},
		{"0.0", nil, false},
		{"155", f(155), false},
		{"3.5", f(3.5), false},
		{"abc", nil, true},
	}

	for _, tt := range tests {
		got, err := parseOptionalFloat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseOptionalFloat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOptionalFloat(%q): %v", tt.in, err)
			continue
		}
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseOptionalFloat(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseOptionalFloat(%q) = %v, want %v", tt.in, got, *tt.want)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestSplitAliases(t *testing.T) {
	got := splitAliases(" ШПП, ширмы ,, КПП ")
	want := []string{"ШПП", "ширмы", "КПП"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("alias[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSelection(t *testing.T) {
	values := url.Values{
		"station":  {"StationA", " ", "StationB"},
		"steel":    {"Ст20"},
		"category": {},
	}
	sel := parseSelection(values)
	if len(sel.Stations) != 2 {
		t.Errorf("Stations = %v, want 2 entries", sel.Stations)
	}
	if len(sel.Steels) != 1 || sel.Steels[0] != "Ст20" {
		t.Errorf("Steels = %v", sel.Steels)
	}
	if sel.Categories != nil {
		t.Errorf("Categories = %v, want nil", sel.Categories)
	}
}

func TestParseSurfaceFormRejectsBadNumber(t *testing.T) {
	values := url.Values{"name": {"X"}, "pressure": {"high"}}
	if _, err := parseSurfaceForm(values); err == nil {
		t.Fatal("expected error for non-numeric pressure")
	}
}
