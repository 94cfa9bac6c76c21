package parser

import (
	"github.com/ryantenney/go-units/internal/unit"
	"github.com/ryantenney/go-units/internal/unitserr"
)

// conformNothing is the "ignore nothing" conformability predicate used by
// the '+'/'-' production: two fully-reduced values conform only if their
// canonical numerator/denominator atom multisets match exactly. It never
// consults the database (unlike the comparator's dimensionless/primitive
// variants in internal/convert), so it lives here rather than pulling in
// that package.
func conformNothing(a, b *unit.Value) bool {
	a.Canonicalize()
	b.Canonicalize()
	return sameAtoms(a.Num, b.Num) && sameAtoms(a.Denom, b.Denom)
}

func sameAtoms(x, y []unit.Atom) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func unitserrBadSum() error {
	return unitserr.New(unitserr.BadSum, "units are not conformable for addition")
}
