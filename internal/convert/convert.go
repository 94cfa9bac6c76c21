package convert

import (
	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/unit"
)

// Outcome classifies how a have/want conversion succeeded, if it did.
type Outcome int

const (
	// Conformable means have and want matched directly.
	Conformable Outcome = iota
	// ReciprocalConformable means have only matched 1/want.
	ReciprocalConformable
	// NotConformable means neither have nor its reciprocal matched want.
	NotConformable
)

// Report is the result of converting have to want.
type Report struct {
	Outcome    Outcome
	Factor     float64
	Reciprocal float64
	Have       *unit.Value // the operand actually compared (have, or its reciprocal)
	Want       *unit.Value
}

// Convert compares have against want (both already fully reduced and
// canonicalized) under ignore-dimensionless, falling back to have's
// reciprocal unless strict is set.
func Convert(db *database.DB, have, want *unit.Value, strict bool) *Report {
	pred := IgnoreDimless(db)

	if Compare(have, want, pred) {
		factor := have.Factor / want.Factor
		return &Report{Outcome: Conformable, Factor: factor, Reciprocal: 1 / factor, Have: have, Want: want}
	}

	if !strict {
		recip := have.Invert()
		if Compare(recip, want, pred) {
			factor := recip.Factor / want.Factor
			return &Report{Outcome: ReciprocalConformable, Factor: factor, Reciprocal: 1 / factor, Have: recip, Want: want}
		}
	}

	return &Report{Outcome: NotConformable, Have: have, Want: want}
}
