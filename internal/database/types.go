// Package database implements the units database: the loader that reads
// unit/prefix/function definitions from text sources, and the lookup
// tables those definitions live in.
package database

// PrimitiveMark is the character that, appearing in a unit's body, marks
// it as irreducible. An optional dimension tag may follow it, e.g.
// "!dimensionless".
const PrimitiveMark = '!'

// DimensionlessTag is the body of a unit defined as "!dimensionless" —
// ignored by conformability checks under the ignore-dimensionless
// predicate (e.g. radian, steradian).
const DimensionlessTag = "!dimensionless"

// Location identifies where a definition came from, for error messages.
type Location struct {
	File string
	Line int
}

// Unit is a named definition whose Body is either an unparsed expression
// or, if it contains PrimitiveMark, a marker of irreducibility.
type Unit struct {
	Name      string
	Body      string
	Primitive bool
	Dimension string // tag after '!' for a primitive unit, e.g. "dimensionless"
	Loc       Location
}

// Prefix is a named multiplier, stored without its trailing '-'.
type Prefix struct {
	Text string
	Body string
	Loc  Location
}

// TablePoint is one (x, y) pair of a piecewise-linear table function.
type TablePoint struct {
	X, Y float64
}

// Branch is one direction (forward or inverse) of a functional-form
// function definition.
type Branch struct {
	Param     string
	Body      string
	Dimension string // optional; empty means "accept any dimension"
}

// Function is either a piecewise-linear table or a functional form with
// a forward branch and an optional inverse branch.
type Function struct {
	Name string
	Loc  Location

	// Table form.
	IsTable bool
	CoUnit  string
	Points  []TablePoint

	// Functional form.
	Forward *Branch
	Inverse *Branch
}
