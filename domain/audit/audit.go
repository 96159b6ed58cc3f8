// Package audit provides the mutation journal value types.
// This package has NO dependencies on I/O or external packages.
package audit

import "time"

// Action identifies what kind of catalog mutation an entry records.
type Action string

const (
	ActionAddBoiler    Action = "add_boiler"
	ActionAddSurface   Action = "add_surface"
	ActionImport       Action = "import"
	ActionDeleteBoiler Action = "delete_boiler"
	ActionReset        Action = "reset"
)

// Entry is one recorded catalog mutation (immutable value type).
type Entry struct {
	ID       string    `json:"id"`
	Action   Action    `json:"action"`
	BoilerID string    `json:"boiler_id"` // target boiler, empty for import/reset
	Records  int       `json:"records"`   // boilers+surfaces the mutation added or removed
	Actor    string    `json:"actor"`     // basic-auth user, or "anonymous"
	Detail   string    `json:"detail"`    // free text: file name, surface name, etc.
	At       time.Time `json:"at"`
}
