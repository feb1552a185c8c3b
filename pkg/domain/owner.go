package domain

import "github.com/google/uuid"

// OwnerID identifies the caller that submitted a batch. It is taken from the
// subject of the bearer token.
type OwnerID uuid.UUID

// String returns the canonical UUID form.
func (id OwnerID) String() string { return uuid.UUID(id).String() }
