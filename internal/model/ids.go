// Package model defines the authoritative data model owned exclusively by
// the state actor (internal/actor): screens, workspaces, and windows, plus
// the indexed containers that keep O(1) id lookups in lock-step with
// insertion order. Every other component only ever sees copies of these
// types returned by a query, or ids passed back in a command, per
// spec.md §3 "Ownership".
package model

import "github.com/google/uuid"

// ScreenID is the OS-assigned identifier of a physical display.
type ScreenID uint32

// WindowID is the OS-assigned identifier of a tracked window.
type WindowID uint32

// WorkspaceID is a process-unique identifier generated when a workspace
// is created. Workspaces never persist across restarts (spec.md §1
// Non-goals), so a random v4 UUID is sufficient; no ordering or
// creation-time semantics are ever derived from it.
type WorkspaceID uuid.UUID

// NewWorkspaceID generates a fresh workspace identifier.
func NewWorkspaceID() WorkspaceID {
	return WorkspaceID(uuid.New())
}

// String renders the workspace id in its canonical textual form, used by
// log fields and the JSON wire format.
func (id WorkspaceID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler so WorkspaceID serializes
// as a plain UUID string in JSON rather than a byte array.
func (id WorkspaceID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *WorkspaceID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = WorkspaceID(u)
	return nil
}
