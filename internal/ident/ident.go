// Package ident assigns stable unique identities to core instances.
//
// Collaborators (serialization, debugging, metrics) address layers and
// optimizers by ID instead of relying on pointer identity.
package ident

import "github.com/google/uuid"

// ID identifies one live layer or optimizer instance.
//
// IDs are comparable, usable as map keys, and stable for the lifetime of the
// instance they were assigned to. No two live instances share an ID.
type ID uuid.UUID

// New returns a fresh ID. It never fails.
func New() ID {
	return ID(uuid.New())
}

// String returns the canonical textual form of the ID.
func (id ID) String() string {
	return uuid.UUID(id).String()
}
