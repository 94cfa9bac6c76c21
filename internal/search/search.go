// Package search implements two listing modes: conformable-unit search
// and plain substring search.
package search

import (
	"sort"
	"strings"

	"github.com/ryantenney/go-units/internal/convert"
	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/function"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/reduce"
	"github.com/ryantenney/go-units/internal/unit"
)

// PageSize is the default number of results per page when paginating;
// callers (the CLI) may slice Results themselves for a different size.
const PageSize = 24

// Conformable returns every defined unit name whose fully-reduced value
// conforms with target under ignore-dimensionless, sorted by name.
func Conformable(db *database.DB, target *unit.Value) []string {
	reducer := reduce.New(db)
	engine := function.New(db)
	pred := convert.IgnoreDimless(db)

	var out []string
	for name := range db.Units {
		ctx := parser.NewContext(parser.Config{Minus: true}, engine, reducer)
		v, err := parser.New(name, ctx).Parse()
		if err != nil {
			continue
		}
		if err := reducer.Reduce(ctx, v); err != nil {
			continue
		}
		if convert.Compare(v, target, pred) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Substring returns every defined unit, prefix, and function name
// containing term as a case-sensitive substring, sorted.
func Substring(db *database.DB, term string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if strings.Contains(name, term) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for name := range db.Units {
		add(name)
	}
	for _, bucket := range db.Prefixes {
		for _, p := range bucket {
			add(p.Text)
		}
	}
	for _, name := range db.FunctionNames() {
		add(name)
	}
	sort.Strings(out)
	return out
}

// Page slices results into the page'th (zero-based) chunk of size.
func Page(results []string, page, size int) []string {
	if size <= 0 {
		size = PageSize
	}
	start := page * size
	if start >= len(results) {
		return nil
	}
	end := start + size
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
