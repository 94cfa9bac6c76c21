// Package reduce implements repeated substitution of a unit atom's
// database definition for itself until every atom in a Value is
// primitive, followed by canonical sort+cancel.
package reduce

import (
	"strings"

	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/unit"
)

// Reducer implements parser.Reducer against a *database.DB.
type Reducer struct {
	DB *database.DB
}

// New returns a Reducer backed by db.
func New(db *database.DB) *Reducer {
	return &Reducer{DB: db}
}

// Reduce repeatedly substitutes non-primitive atoms in both the
// numerator and denominator until a full pass makes no further
// substitutions, then canonicalizes v in place.
func (r *Reducer) Reduce(ctx *parser.Context, v *unit.Value) error {
	for {
		numChanged, err := r.reducePass(ctx, v, false)
		if err != nil {
			return err
		}
		denChanged, err := r.reducePass(ctx, v, true)
		if err != nil {
			return err
		}
		if !numChanged && !denChanged {
			break
		}
	}
	v.Canonicalize()
	return nil
}

// reducePass scans one of v's atom sequences (Denom when flip) for
// resolvable, non-primitive names, substituting each one's parsed
// definition into v via Mul (numerator atoms) or Div (denominator
// atoms). The scanned slice is re-read by length every iteration, so
// atoms appended by a fold within this same pass are themselves visited
// before the pass ends.
func (r *Reducer) reducePass(ctx *parser.Context, v *unit.Value, flip bool) (bool, error) {
	target := &v.Num
	if flip {
		target = &v.Denom
	}

	changed := false
	for i := 0; i < len(*target); i++ {
		a := (*target)[i]
		if a == unit.Cancelled {
			continue
		}

		body, ok := r.DB.Resolve(string(a), true)
		if !ok {
			return changed, errUnknownUnit(string(a))
		}
		if strings.Contains(body, string(database.PrimitiveMark)) {
			continue
		}

		(*target)[i] = unit.Cancelled
		changed = true

		sub, err := r.parseBody(ctx, body)
		if err != nil {
			return changed, err
		}
		if flip {
			err = v.Div(sub)
		} else {
			err = v.Mul(sub)
		}
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// parseBody reparses a resolved definition body using the same shared
// Context (recursion Budget, Funcs, Reduce) the caller was given. The
// Budget bounds nesting depth only: each body parse here finishes before
// the next begins, so a unit whose definition refers back to itself is
// substituted again on every pass and is not stopped by PARSE_MEM.
func (r *Reducer) parseBody(ctx *parser.Context, body string) (*unit.Value, error) {
	return parser.New(body, ctx).Parse()
}
