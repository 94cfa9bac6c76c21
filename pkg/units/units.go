// Package units is the embeddable façade over the conversion engine: it
// wires the database, parser, reducer, function engine and comparator
// together behind a handful of entry points an application (or the
// units CLI) can call without touching any internal package directly.
package units

import (
	"io"

	"github.com/ryantenney/go-units/internal/convert"
	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/function"
	"github.com/ryantenney/go-units/internal/integrity"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/reduce"
	"github.com/ryantenney/go-units/internal/search"
	"github.com/ryantenney/go-units/internal/unit"
)

// Config mirrors the CLI's syntax-affecting flags, re-exported here so
// callers never need to import internal/parser to build one.
type Config struct {
	Minus   bool // --minus/--product
	OldStar bool // --oldstar/--newstar
	Strict  bool // --strict: disable reciprocal fallback
}

// Engine is a loaded database plus its wired parser/reducer/function
// collaborators, ready to parse, reduce, and convert expressions.
type Engine struct {
	DB       *database.DB
	reducer  *reduce.Reducer
	function *function.Engine
}

// New wires a fresh Engine around db.
func New(db *database.DB) *Engine {
	return &Engine{
		DB:       db,
		reducer:  reduce.New(db),
		function: function.New(db),
	}
}

// Load reads one database source (see internal/database's directive
// grammar) into a new Engine.
func Load(r io.Reader, virtualPath, locale string) (*Engine, error) {
	db := database.New(locale)
	loader := database.NewLoader()
	if err := loader.LoadReader(db, r, virtualPath); err != nil {
		return nil, err
	}
	return New(db), nil
}

// LoadFile reads a database file (following !include directives
// relative to it) into a new Engine.
func LoadFile(path, locale string) (*Engine, error) {
	db := database.New(locale)
	loader := database.NewLoader()
	if err := loader.LoadFile(db, path); err != nil {
		return nil, err
	}
	return New(db), nil
}

// LoadMore layers an additional database file's definitions on top of
// e's existing DB, resolving !include relative to the new file just as
// the initial load did.
func (e *Engine) LoadMore(path string) error {
	return database.NewLoader().LoadFile(e.DB, path)
}

func (e *Engine) newContext(cfg Config) *parser.Context {
	return parser.NewContext(parser.Config{Minus: cfg.Minus, OldStar: cfg.OldStar}, e.function, e.reducer)
}

// Parse parses expr without reducing it.
func (e *Engine) Parse(expr string, cfg Config) (*unit.Value, error) {
	return parser.New(expr, e.newContext(cfg)).Parse()
}

// Eval parses and fully reduces expr to primitives.
func (e *Engine) Eval(expr string, cfg Config) (*unit.Value, error) {
	ctx := e.newContext(cfg)
	v, err := parser.New(expr, ctx).Parse()
	if err != nil {
		return nil, err
	}
	if err := e.reducer.Reduce(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Convert evaluates have and want and reports their conversion, minus
// the text rendering (see internal/convert.Render for that).
func (e *Engine) Convert(have, want string, cfg Config) (*convert.Report, error) {
	haveVal, err := e.Eval(have, cfg)
	if err != nil {
		return nil, err
	}
	wantVal, err := e.Eval(want, cfg)
	if err != nil {
		return nil, err
	}
	haveVal.Canonicalize()
	wantVal.Canonicalize()
	return convert.Convert(e.DB, haveVal, wantVal, cfg.Strict), nil
}

// Define renders the definition chain of expr: expr is resolved as a
// name, then each resolved body in turn, until a primitive or bare-number
// body is reached or a body does not itself resolve as a name (so a body
// such as "12 inch" ends the chain, and an expression like "6 inches"
// yields an empty chain). The final reduced Value is returned alongside.
func (e *Engine) Define(expr string, cfg Config) ([]string, *unit.Value, error) {
	var chain []string
	name := expr
	for {
		body, ok := e.DB.Resolve(name, true)
		if !ok {
			break
		}
		chain = append(chain, body)
		if isPrimitiveOrNumeric(body) {
			break
		}
		name = body
	}

	v, err := e.Eval(expr, cfg)
	if err != nil {
		return chain, nil, err
	}
	return chain, v, nil
}

func isPrimitiveOrNumeric(body string) bool {
	if body == "" {
		return false
	}
	for _, r := range body {
		if r == database.PrimitiveMark {
			return true
		}
	}
	for _, r := range body {
		if (r < '0' || r > '9') && r != '.' && r != ' ' && r != '-' && r != '+' {
			return false
		}
	}
	return true
}

// Conformable returns every defined unit name conforming with target.
func (e *Engine) Conformable(target *unit.Value) []string {
	return search.Conformable(e.DB, target)
}

// Substring returns every defined name containing term.
func (e *Engine) Substring(term string) []string {
	return search.Substring(e.DB, term)
}

// Check runs the full database integrity check.
func (e *Engine) Check() *integrity.Report {
	return integrity.Check(e.DB)
}
