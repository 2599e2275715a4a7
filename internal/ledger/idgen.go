package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces transaction record IDs.
// Implemented by UUIDv7Generator (production) and SequenceGenerator (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDs. Uniqueness within a ledger's
// lifetime is all the contract demands; the embedded timestamp gives the
// "monotonic-ish" property for free.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
// Falls back to UUIDv4 in the unlikely event the v7 source fails.
func (UUIDv7Generator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceGenerator produces deterministic IDs for tests.
type SequenceGenerator struct {
	Prefix string
	next   int
}

// Generate returns "<prefix>-<n>" with n increasing from 1.
func (g *SequenceGenerator) Generate() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.Prefix, g.next)
}
