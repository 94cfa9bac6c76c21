// Package convert implements conformability comparison and the
// have/want conversion report.
package convert

import (
	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/unit"
)

// Ignorable decides whether an atom should be skipped during
// conformability comparison.
type Ignorable func(name unit.Atom) bool

// IgnoreNothing never skips an atom: the strictest comparison, used by
// the integrity check's --minus/--product ambiguity comparison.
func IgnoreNothing(unit.Atom) bool { return false }

// IgnoreDimless skips an atom whose database body is exactly
// "!dimensionless" — the predicate ordinary have/want conversion and
// search use.
func IgnoreDimless(db *database.DB) Ignorable {
	return func(name unit.Atom) bool {
		u, ok := db.Units[string(name)]
		return ok && u.Body == database.DimensionlessTag
	}
}

// IgnorePrimitive skips an atom whose database body contains
// PrimitiveMark anywhere — used by the integrity check to confirm every
// definition reduces all the way down to primitives.
func IgnorePrimitive(db *database.DB) Ignorable {
	return func(name unit.Atom) bool {
		u, ok := db.Units[string(name)]
		if !ok {
			return false
		}
		for _, r := range u.Body {
			if r == database.PrimitiveMark {
				return true
			}
		}
		return false
	}
}

// Compare reports whether a and b are conformable under pred: their
// sorted numerator sequences must match once ignorable and Cancelled
// atoms are skipped, and likewise for the denominators. Both Values must
// already be reduced and canonicalized (sorted+cancelled).
func Compare(a, b *unit.Value, pred Ignorable) bool {
	return compareSide(a.Num, b.Num, pred) && compareSide(a.Denom, b.Denom, pred)
}

func compareSide(x, y []unit.Atom, pred Ignorable) bool {
	i, j := 0, 0
	for i < len(x) || j < len(y) {
		for i < len(x) && skip(x[i], pred) {
			i++
		}
		for j < len(y) && skip(y[j], pred) {
			j++
		}
		xDone, yDone := i >= len(x), j >= len(y)
		if xDone && yDone {
			return true
		}
		if xDone != yDone {
			return false
		}
		if x[i] != y[j] {
			return false
		}
		i++
		j++
	}
	return true
}

func skip(a unit.Atom, pred Ignorable) bool {
	return a == unit.Cancelled || pred(a)
}
