// Package parser implements the units-expression parser: recursive
// descent over a string, producing a *unit.Value directly (there is no
// intermediate AST — this is an evaluator-style parser, like a
// calculator).
package parser

import "github.com/ryantenney/go-units/internal/unit"

// Config holds the syntax options the CLI's --minus/--product and
// --oldstar/--newstar flags select.
type Config struct {
	// Minus, when true, makes '-' a subtraction operator at the expr
	// level. When false, '-' is not consumed as an operator at the expr
	// level at all (it is left for the caller/database author to use as
	// an ordinary character, e.g. inside a compound name).
	Minus bool

	// OldStar, when true, gives '*' higher precedence than '/' within a
	// term (so "a/b*c" groups as "a/(b*c)"); when false (newstar, the
	// default) '*', '/', and juxtaposition share one left-to-right
	// precedence level.
	OldStar bool
}

// FuncApplier evaluates named nonlinear functions; it is supplied
// by whoever wires the engine together so this package never needs to
// import the function-engine package (which itself depends on this one
// to re-parse branch bodies, so a direct import would cycle).
type FuncApplier interface {
	HasFunc(name string) bool
	Apply(ctx *Context, name string, arg *unit.Value, inverse bool) (*unit.Value, error)
}

// Reducer fully reduces a Value to primitives; only needed by the parser
// for the '+'/'-' (sum) production, which must compare fully-reduced
// operands.
type Reducer interface {
	Reduce(ctx *Context, v *unit.Value) error
}

// Budget bounds the nesting depth of Parse calls sharing one Context —
// not just within one Parser instance — since the function engine parses
// a branch body while the call that invoked it is still being parsed.
// Exceeding it returns PARSE_MEM, guarding against recursive function
// definitions. Parses that run one after another (as the reducer's do)
// do not add up.
type Budget struct {
	depth int
	max   int
}

// NewBudget returns a Budget allowing up to max nested parses (0 selects
// a generous default).
func NewBudget(max int) *Budget {
	if max <= 0 {
		max = 500
	}
	return &Budget{max: max}
}

func (b *Budget) enter() error {
	b.depth++
	if b.depth > b.max {
		return errParseMem(b.max)
	}
	return nil
}

func (b *Budget) exit() {
	b.depth--
}

// Context is the explicit, threadable state the parser needs beyond the
// raw token stream: syntax config, the shared recursion Budget, the
// injected function/reduce collaborators, and the current function
// parameter binding (name + value) used while parsing a function body.
//
// Binding a parameter returns a new Context (WithParam); the caller's own
// Context is untouched, which is what gives nested function application
// its save/restore discipline for free — no explicit push/pop bookkeeping
// is needed.
type Context struct {
	Cfg    Config
	Budget *Budget
	Funcs  FuncApplier
	Reduce Reducer

	paramName  string
	paramValue *unit.Value
	hasParam   bool
}

// NewContext builds a fresh top-level Context sharing one Budget across
// every nested parse it spawns.
func NewContext(cfg Config, funcs FuncApplier, reduce Reducer) *Context {
	return &Context{Cfg: cfg, Budget: NewBudget(0), Funcs: funcs, Reduce: reduce}
}

// WithParam returns a copy of ctx bound to a function parameter
// substitution for the duration of parsing one branch body.
func (ctx *Context) WithParam(name string, value *unit.Value) *Context {
	cp := *ctx
	cp.paramName = name
	cp.paramValue = value
	cp.hasParam = true
	return &cp
}
