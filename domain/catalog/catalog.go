// Package catalog provides the boiler reference value types and pure
// functions over them. This package has NO dependencies on I/O or
// external packages.
package catalog

import (
	"errors"
	"strings"
)

// Catalog is the full persisted collection of boilers.
// It is the sole document the store reads and writes.
type Catalog struct {
	Boilers []Boiler `json:"boilers"`
}

// Boiler is a steam-generating unit identified by a unique id.
type Boiler struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Station    string    `json:"station,omitempty"`
	BoilerType string    `json:"boilerType,omitempty"`
	Location   string    `json:"location,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Parameters string    `json:"parameters,omitempty"`
	Surfaces   []Surface `json:"surfaces,omitempty"`
}

// Surface is a heating surface within a boiler. Its name is its identity
// inside the owning boiler and is the merge dedup key.
type Surface struct {
	Name          string      `json:"name"`
	Aliases       []string    `json:"aliases,omitempty"`
	Steel         string      `json:"steel,omitempty"`
	Pressure      *float64    `json:"pressure,omitempty"`
	Temperature   *float64    `json:"temperature,omitempty"`
	OuterDiameter *float64    `json:"outerDiameter,omitempty"`
	WallThickness *float64    `json:"wallThickness,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Category      string      `json:"category,omitempty"`
	System        string      `json:"system,omitempty"`
	Section       string      `json:"section,omitempty"`
	SurfaceGroup  string      `json:"surface_group,omitempty"`
	Components    []Component `json:"components,omitempty"`
}

// Component is an optional finer-grained breakdown of a surface.
type Component struct {
	Description   string   `json:"description,omitempty"`
	Section       string   `json:"section,omitempty"`
	Steel         string   `json:"steel,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	OuterDiameter *float64 `json:"outerDiameter,omitempty"`
	WallThickness *float64 `json:"wallThickness,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// Validation and lookup errors. Handlers map these onto HTTP status codes.
var (
	ErrMissingID      = errors.New("boiler id is required")
	ErrMissingName    = errors.New("surface name is required")
	ErrBoilerExists   = errors.New("boiler id already exists")
	ErrBoilerNotFound = errors.New("boiler not found")
	ErrSurfaceExists  = errors.New("surface name already exists")
)

// Empty returns a catalog with no boilers. A missing document on disk
// loads as Empty(), not as an error.
func Empty() Catalog {
	return Catalog{Boilers: []Boiler{}}
}

// FindBoiler returns a pointer to the boiler with the given id, or nil.
func FindBoiler(c *Catalog, id string) *Boiler {
	for i := range c.Boilers {
		if c.Boilers[i].ID == id {
			return &c.Boilers[i]
		}
	}
	return nil
}

// ValidateBoiler checks that a new boiler may be appended to the catalog.
// Surfaces the boiler carries are held to the same rules as AddSurface:
// every name non-empty and unique within the boiler.
func ValidateBoiler(c *Catalog, b Boiler) error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrMissingID
	}
	if FindBoiler(c, b.ID) != nil {
		return ErrBoilerExists
	}
	seen := make(map[string]bool, len(b.Surfaces))
	for _, s := range b.Surfaces {
		if strings.TrimSpace(s.Name) == "" {
			return ErrMissingName
		}
		if seen[s.Name] {
			return ErrSurfaceExists
		}
		seen[s.Name] = true
	}
	return nil
}

// ValidateSurface checks that a new surface may be appended to the boiler.
// A nil boiler means the target id was not found in the catalog.
func ValidateSurface(b *Boiler, s Surface) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}
	if b == nil {
		return ErrBoilerNotFound
	}
	for _, existing := range b.Surfaces {
		if existing.Name == s.Name {
			return ErrSurfaceExists
		}
	}
	return nil
}

// CountSurfaces returns the total number of surfaces across all boilers.
func CountSurfaces(c *Catalog) int {
	n := 0
	for i := range c.Boilers {
		n += len(c.Boilers[i].Surfaces)
	}
	return n
}
