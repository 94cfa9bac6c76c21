package database

import "github.com/ryantenney/go-units/internal/unitserr"

// DB holds every unit, prefix, and function loaded so far. It is built
// once at startup (by Loader.LoadFile or Loader.LoadReader, possibly
// called more than once to layer multiple files) and is read-only
// thereafter.
type DB struct {
	Units     map[string]*Unit
	Prefixes  map[byte][]*Prefix // bucketed by first byte of Text, insertion order preserved
	Functions map[string]*Function
	funcOrder []string // insertion order, for deterministic search listings

	Locale string

	// Errors accumulates non-fatal load errors (BAD_FILE); a database
	// with entries here is still usable — the loader keeps going instead
	// of aborting the whole file on one bad definition.
	Errors []error
}

// New returns an empty database configured for the given locale (used to
// select !locale/!endlocale blocks during loading).
func New(locale string) *DB {
	return &DB{
		Units:     make(map[string]*Unit),
		Prefixes:  make(map[byte][]*Prefix),
		Functions: make(map[string]*Function),
		Locale:    locale,
	}
}

// AddUnit registers a unit, refusing redefinition (insertion wins, later
// definitions of the same name are an error).
func (db *DB) AddUnit(u *Unit) error {
	if _, exists := db.Units[u.Name]; exists {
		return unitserr.New(unitserr.BadFile, "redefinition of unit '%s'", u.Name).WithLocation(u.Loc.File, u.Loc.Line)
	}
	db.Units[u.Name] = u
	return nil
}

// AddPrefix registers a prefix. A prefix whose text exactly matches an
// already-registered one is a redefinition error; one that merely shares
// a bucket is appended after the existing entries so that the
// first-match-wins lookup in Resolve sees earlier-declared prefixes first.
func (db *DB) AddPrefix(p *Prefix) error {
	if len(p.Text) == 0 {
		return unitserr.New(unitserr.BadFile, "empty prefix name").WithLocation(p.Loc.File, p.Loc.Line)
	}
	bucket := p.Text[0]
	for _, existing := range db.Prefixes[bucket] {
		if existing.Text == p.Text {
			return unitserr.New(unitserr.BadFile, "redefinition of prefix '%s-'", p.Text).WithLocation(p.Loc.File, p.Loc.Line)
		}
	}
	db.Prefixes[bucket] = append(db.Prefixes[bucket], p)
	return nil
}

// AddFunction registers a function or table. Functions may share a name
// with a unit; the function shadows the unit wherever call syntax is
// used.
func (db *DB) AddFunction(f *Function) error {
	if _, exists := db.Functions[f.Name]; exists {
		return unitserr.New(unitserr.BadFile, "redefinition of function '%s'", f.Name).WithLocation(f.Loc.File, f.Loc.Line)
	}
	db.Functions[f.Name] = f
	db.funcOrder = append(db.funcOrder, f.Name)
	return nil
}

// FunctionNames returns function names in declaration order.
func (db *DB) FunctionNames() []string {
	out := make([]string, len(db.funcOrder))
	copy(out, db.funcOrder)
	return out
}

// AddError records a non-fatal load error and marks BadFile.
func (db *DB) AddError(err error) {
	db.Errors = append(db.Errors, err)
}

// BadFile reports whether any non-fatal load error was recorded.
func (db *DB) BadFile() bool {
	return len(db.Errors) > 0
}
