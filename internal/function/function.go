// Package function implements the two forms of user-defined functions a
// units database can declare: piecewise-linear interpolation tables and
// dimension-checked functional forms with an optional inverse.
package function

import (
	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/unit"
	"github.com/ryantenney/go-units/internal/unitserr"
)

// Engine implements parser.FuncApplier against a *database.DB.
type Engine struct {
	DB *database.DB
}

// New returns an Engine backed by db.
func New(db *database.DB) *Engine {
	return &Engine{DB: db}
}

// HasFunc reports whether name names a declared table or functional form.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.DB.Functions[name]
	return ok
}

// Apply evaluates the named function (or, if inverse, its inverse
// direction) against arg.
func (e *Engine) Apply(ctx *parser.Context, name string, arg *unit.Value, inverse bool) (*unit.Value, error) {
	f, ok := e.DB.Functions[name]
	if !ok {
		return nil, errUnknownFunction(name)
	}
	if f.IsTable {
		return e.applyTable(ctx, f, arg, inverse)
	}
	return e.applyForm(ctx, f, arg, inverse)
}

// applyTable evaluates a piecewise-linear table. Forward, arg is a bare
// number interpreted as a table X (location); the result is the
// interpolated Y scaled by the table's declared co-unit. Inverse, arg
// must be conformable with the co-unit; dividing it out yields a Y which
// is interpolated back to an X, returned as a bare number.
func (e *Engine) applyTable(ctx *parser.Context, f *database.Function, arg *unit.Value, inverse bool) (*unit.Value, error) {
	coUnit, err := parser.New(f.CoUnit, ctx).Parse()
	if err != nil {
		return nil, errBadTable(f.Name)
	}

	if inverse {
		working := arg.Clone()
		if err := working.Div(coUnit); err != nil {
			return nil, err
		}
		if ctx.Reduce != nil {
			if err := ctx.Reduce.Reduce(ctx, working); err != nil {
				return nil, err
			}
		}
		if !working.IsNumeric() {
			return nil, errBadFuncArg(f.Name)
		}
		x, ok := interpolate(f.Points, working.Factor, true)
		if !ok {
			return nil, errNotInDomain(f.Name)
		}
		return unit.New(x), nil
	}

	reduced := arg.Clone()
	if ctx.Reduce != nil {
		if err := ctx.Reduce.Reduce(ctx, reduced); err != nil {
			return nil, err
		}
	}
	if !reduced.IsNumeric() {
		return nil, errBadFuncArg(f.Name)
	}
	y, ok := interpolate(f.Points, reduced.Factor, false)
	if !ok {
		return nil, errNotInDomain(f.Name)
	}
	result := coUnit.Clone()
	result.Factor *= y
	return result, nil
}

// interpolate walks adjacent table segments for the one bracketing c
// (on the Y axis when invert is true, the X axis otherwise) and returns
// the corresponding value on the other axis.
func interpolate(points []database.TablePoint, c float64, invert bool) (float64, bool) {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		lo, hi := a.X, b.X
		fromLo, fromHi := a.X, b.X
		toLo, toHi := a.Y, b.Y
		if invert {
			lo, hi = a.Y, b.Y
			fromLo, fromHi = a.Y, b.Y
			toLo, toHi = a.X, b.X
		}
		if between(lo, hi, c) {
			return linearInterp(fromLo, fromHi, toLo, toHi, c), true
		}
	}
	return 0, false
}

func between(a, b, v float64) bool {
	if a <= b {
		return a <= v && v <= b
	}
	return b <= v && v <= a
}

func linearInterp(a, b, aval, bval, c float64) float64 {
	lambda := (b - c) / (b - a)
	return lambda*aval + (1-lambda)*bval
}

// applyForm evaluates a functional-form branch: the argument is reduced
// and, if the branch declares a dimension, checked against it; the
// branch's parameter is then bound and its body parsed in a derived
// Context.
func (e *Engine) applyForm(ctx *parser.Context, f *database.Function, arg *unit.Value, inverse bool) (*unit.Value, error) {
	branch := f.Forward
	if inverse {
		branch = f.Inverse
		if branch == nil {
			return nil, errNoInverse(f.Name)
		}
	}

	reduced := arg.Clone()
	if ctx.Reduce != nil {
		if err := ctx.Reduce.Reduce(ctx, reduced); err != nil {
			return nil, err
		}
	}

	if branch.Dimension != "" {
		dim, err := parser.New(branch.Dimension, ctx).Parse()
		if err != nil {
			return nil, errBadTable(f.Name)
		}
		if ctx.Reduce != nil {
			if err := ctx.Reduce.Reduce(ctx, dim); err != nil {
				return nil, errBadTable(f.Name)
			}
		}
		if !sameDimension(dim, reduced) {
			return nil, errBadFuncArg(f.Name)
		}
	}

	paramCtx := ctx.WithParam(branch.Param, reduced)
	result, err := parser.New(branch.Body, paramCtx).Parse()
	if err != nil {
		if unitserr.Is(err, unitserr.ParseMem) {
			return nil, err
		}
		return nil, errFunArgDef(f.Name)
	}
	return result, nil
}

// sameDimension compares two already-reduced values' canonical atom sets
// for exact equality, the "ignore nothing" conformability rule a
// function-argument dimension check uses.
func sameDimension(a, b *unit.Value) bool {
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
