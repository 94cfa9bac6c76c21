// Package integrity implements the database self-check: every definition
// must reduce to primitives, and a set of heuristic checks flag
// definitions that are syntactically legal but probably wrong.
package integrity

import (
	"fmt"
	"sort"

	"github.com/ryantenney/go-units/internal/convert"
	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/function"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/reduce"
	"github.com/ryantenney/go-units/internal/unit"
)

// testPoint is the fixed input the round-trip check evaluates functions at.
const testPoint = 7.0

// roundTripTolerance is the maximum acceptable drift between x and
// inverse(forward(x)).
const roundTripTolerance = 1e-12

// Report collects every problem found by Check, split by severity rather
// than by the entry it's about, so a caller can report errors before
// warnings.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no Errors were recorded (Warnings don't fail a check).
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check runs every integrity check against db and returns the findings.
func Check(db *database.DB) *Report {
	report := &Report{}
	reducer := reduce.New(db)
	engine := function.New(db)

	checkUnits(db, reducer, engine, report)
	checkPrefixes(db, reducer, engine, report)
	checkFunctions(db, reducer, engine, report)
	return report
}

func newContext(cfg parser.Config, engine *function.Engine, reducer *reduce.Reducer) *parser.Context {
	return parser.NewContext(cfg, engine, reducer)
}

func checkUnits(db *database.DB, reducer *reduce.Reducer, engine *function.Engine, report *Report) {
	for _, name := range sortedUnitNames(db) {
		u := db.Units[name]
		if u.Primitive {
			continue
		}

		if err := checkReducible(name, u.Body, db, reducer, engine); err != nil {
			report.errorf("unit '%s': %v", name, err)
			continue
		}

		checkMinusAmbiguity(name, u.Body, db, reducer, engine, report)
	}
}

// checkReducible parses and fully reduces body, then requires the
// result to be conformable with 1 under ignore_primitive (invariant 1).
func checkReducible(name, body string, db *database.DB, reducer *reduce.Reducer, engine *function.Engine) error {
	v, err := parser.New(body, newContext(parser.Config{Minus: true}, engine, reducer)).Parse()
	if err != nil {
		return err
	}
	if err := reducer.Reduce(newContext(parser.Config{Minus: true}, engine, reducer), v); err != nil {
		return err
	}
	if !convert.Compare(v, unit.New(1), convert.IgnorePrimitive(db)) {
		return fmt.Errorf("does not reduce to primitives: %s", v.String())
	}
	return nil
}

// checkMinusAmbiguity reparses body with Config.Minus flipped and warns
// if the reduced result differs, flagging a definition where '-' could
// be read two ways.
func checkMinusAmbiguity(name, body string, db *database.DB, reducer *reduce.Reducer, engine *function.Engine, report *Report) {
	withMinus, err1 := reduceWith(body, true, db, reducer, engine)
	withoutMinus, err2 := reduceWith(body, false, db, reducer, engine)
	if err1 != nil || err2 != nil {
		return
	}
	if !convert.Compare(withMinus, withoutMinus, convert.IgnoreNothing) ||
		!closeEnough(withMinus.Factor, withoutMinus.Factor, roundTripTolerance) {
		report.warnf("unit '%s': definition is ambiguous under --minus/--product (%q)", name, body)
	}
}

func reduceWith(body string, minus bool, db *database.DB, reducer *reduce.Reducer, engine *function.Engine) (*unit.Value, error) {
	ctx := newContext(parser.Config{Minus: minus}, engine, reducer)
	v, err := parser.New(body, ctx).Parse()
	if err != nil {
		return nil, err
	}
	if err := reducer.Reduce(ctx, v); err != nil {
		return nil, err
	}
	v.Canonicalize()
	return v, nil
}

func checkPrefixes(db *database.DB, reducer *reduce.Reducer, engine *function.Engine, report *Report) {
	for _, b := range sortedPrefixBuckets(db) {
		for _, p := range db.Prefixes[b] {
			if err := checkReducible(p.Text+"-", p.Body, db, reducer, engine); err != nil {
				report.errorf("prefix '%s-': %v", p.Text, err)
			}
			if hasTopLevelSlash(p.Body) {
				report.warnf("prefix '%s-': body %q has an unparenthesized '/' at top level", p.Text, p.Body)
			}
		}
	}
}

// hasTopLevelSlash scans for '/' outside any parenthesized group.
func hasTopLevelSlash(body string) bool {
	depth := 0
	for _, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func checkFunctions(db *database.DB, reducer *reduce.Reducer, engine *function.Engine, report *Report) {
	for _, name := range db.FunctionNames() {
		f := db.Functions[name]
		if f.IsTable {
			checkTableMonotonic(name, f, report)
			continue
		}
		checkFunctionRoundTrip(name, f, engine, reducer, report)
	}
}

func checkTableMonotonic(name string, f *database.Function, report *Report) {
	if len(f.Points) < 2 {
		return
	}
	increasing := f.Points[1].Y > f.Points[0].Y
	for i := 1; i < len(f.Points); i++ {
		diff := f.Points[i].Y - f.Points[i-1].Y
		if increasing && diff <= 0 || !increasing && diff >= 0 {
			report.errorf("table '%s': points.y is not strictly monotonic at index %d", name, i)
			return
		}
	}
}

func checkFunctionRoundTrip(name string, f *database.Function, engine *function.Engine, reducer *reduce.Reducer, report *Report) {
	if f.Inverse == nil {
		return
	}
	ctx := newContext(parser.Config{Minus: true}, engine, reducer)

	testArg, err := testInput(f.Forward.Dimension, ctx)
	if err != nil {
		report.errorf("function '%s': could not build a round-trip test value: %v", name, err)
		return
	}

	forward, err := engine.Apply(ctx, name, testArg, false)
	if err != nil {
		report.errorf("function '%s': forward evaluation at x=%v failed: %v", name, testPoint, err)
		return
	}
	back, err := engine.Apply(ctx, name, forward, true)
	if err != nil {
		report.errorf("function '%s': inverse evaluation failed: %v", name, err)
		return
	}
	if !back.IsNumeric() {
		if err := reducer.Reduce(ctx, back); err != nil {
			report.errorf("function '%s': round-trip result did not reduce: %v", name, err)
			return
		}
	}
	if !closeEnough(back.Factor, testPoint, roundTripTolerance) {
		report.errorf("function '%s': round-trip of x=%v produced %v, drift exceeds %v", name, testPoint, back.Factor, roundTripTolerance)
	}
}

// testInput builds the fixed round-trip probe value: a bare 7 when the
// branch accepts any dimension, or 7 of the declared dimension.
func testInput(dimension string, ctx *parser.Context) (*unit.Value, error) {
	if dimension == "" {
		return unit.New(testPoint), nil
	}
	return parser.New(fmt.Sprintf("%v %s", testPoint, dimension), ctx).Parse()
}

func closeEnough(a, b, tolerance float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func sortedUnitNames(db *database.DB) []string {
	names := make([]string, 0, len(db.Units))
	for name := range db.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedPrefixBuckets(db *database.DB) []byte {
	buckets := make([]byte, 0, len(db.Prefixes))
	for b := range db.Prefixes {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i] < buckets[j] })
	return buckets
}
