package database

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/ryantenney/go-units/internal/unitserr"
)

// MaxIncludeDepth bounds !include recursion.
const MaxIncludeDepth = 5

// Opener abstracts "open a database file by path", so tests can supply an
// in-memory filesystem instead of touching disk. The zero value uses
// os.Open, resolving relative includes against the including file's
// directory.
type Opener func(path string) (io.ReadCloser, error)

func defaultOpener(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Loader reads one or more named text sources into a DB.
type Loader struct {
	Opener Opener
	// LocaleMatcher is not consulted by the loader. A !locale NAME block
	// applies when NAME equals the configured locale or, when both parse
	// as language tags, has the same base language (see localeMatchFunc).
	LocaleMatcher *language.Matcher
}

// NewLoader returns a Loader using the real filesystem.
func NewLoader() *Loader {
	return &Loader{Opener: defaultOpener}
}

type loadState struct {
	db    *DB
	open  Opener
	match func(tag string) bool
}

// LoadFile loads path (and any files it !includes) into db.
func (l *Loader) LoadFile(db *DB, path string) error {
	open := l.Opener
	if open == nil {
		open = defaultOpener
	}
	st := &loadState{db: db, open: open, match: l.localeMatchFunc(db.Locale)}
	return st.loadFile(path, 0)
}

// LoadReader loads already-open content as if it were at virtualPath
// (used for the top-level source and for tests); includes encountered
// within it still resolve through the Loader's Opener.
func (l *Loader) LoadReader(db *DB, r io.Reader, virtualPath string) error {
	open := l.Opener
	if open == nil {
		open = defaultOpener
	}
	st := &loadState{db: db, open: open, match: l.localeMatchFunc(db.Locale)}
	return st.loadLines(r, virtualPath, 0)
}

func (l *Loader) localeMatchFunc(configured string) func(string) bool {
	if configured == "" {
		return func(tag string) bool { return tag == "" }
	}
	want, err := language.Parse(configured)
	if err != nil {
		return func(tag string) bool { return tag == configured }
	}
	return func(tag string) bool {
		if tag == configured {
			return true
		}
		got, err := language.Parse(tag)
		if err != nil {
			return false
		}
		base1, _ := got.Base()
		base2, _ := want.Base()
		return base1 == base2
	}
}

func (st *loadState) loadFile(path string, depth int) error {
	if depth > MaxIncludeDepth {
		return unitserr.New(unitserr.BadFile, "max include depth of %d exceeded at '%s'", MaxIncludeDepth, path)
	}
	f, err := st.open(path)
	if err != nil {
		return unitserr.Wrap(unitserr.File, err, "unable to open database file '%s'", path)
	}
	defer f.Close()
	return st.loadLines(f, path, depth)
}

var (
	prefixShape   = regexp.MustCompile(`^(.+)-$`)
	tableShape    = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)
	functionShape = regexp.MustCompile(`^([^()]+)\(([^()]*)\)$`)
)

func (st *loadState) loadLines(r io.Reader, file string, depth int) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineNum     int
		inLocale    bool
		wrongLocale bool
		pending     string // accumulates backslash-continued text
		pendingLine int
	)

	flush := func(text string, ln int) error {
		return st.handleLine(text, file, ln, &inLocale, &wrongLocale, depth)
	}

	for sc.Scan() {
		lineNum++
		raw := sc.Text()
		if strings.HasSuffix(raw, "\\") {
			pending += strings.TrimSuffix(raw, "\\") + "\n"
			if pendingLine == 0 {
				pendingLine = lineNum
			}
			continue
		}
		text := raw
		ln := lineNum
		if pending != "" {
			text = pending + raw
			ln = pendingLine
			pending = ""
			pendingLine = 0
		}
		if err := flush(text, ln); err != nil {
			st.db.AddError(err)
		}
	}
	if pending != "" {
		if err := flush(pending, pendingLine); err != nil {
			st.db.AddError(err)
		}
	}
	if inLocale {
		st.db.AddError(unitserr.New(unitserr.BadFile, "unterminated !locale block").WithLocation(file, lineNum))
	}
	if err := sc.Err(); err != nil {
		return unitserr.Wrap(unitserr.File, err, "error reading '%s'", file)
	}
	return nil
}

func (st *loadState) handleLine(line, file string, lineNum int, inLocale, wrongLocale *bool, depth int) error {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "!") {
		return st.handleDirective(trimmed, file, lineNum, inLocale, wrongLocale, depth)
	}

	if *wrongLocale {
		return nil
	}

	name := strings.Fields(trimmed)[0]
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, name))
	if body == "" {
		return unitserr.New(unitserr.BadFile, "missing definition body for '%s'", name).WithLocation(file, lineNum)
	}

	loc := Location{File: file, Line: lineNum}
	return st.defineEntry(name, body, loc)
}

func (st *loadState) handleDirective(line, file string, lineNum int, inLocale, wrongLocale *bool, depth int) error {
	fields := strings.Fields(line)
	directive := strings.TrimPrefix(fields[0], "!")

	switch directive {
	case "locale":
		if len(fields) < 2 {
			return unitserr.New(unitserr.BadFile, "no locale specified").WithLocation(file, lineNum)
		}
		if *inLocale {
			return unitserr.New(unitserr.BadFile, "nested !locale not allowed").WithLocation(file, lineNum)
		}
		*inLocale = true
		*wrongLocale = !st.match(fields[1])
		return nil

	case "endlocale":
		if !*inLocale {
			return unitserr.New(unitserr.BadFile, "unmatched !endlocale").WithLocation(file, lineNum)
		}
		*inLocale = false
		*wrongLocale = false
		return nil

	case "include":
		if *wrongLocale {
			return nil
		}
		if len(fields) < 2 {
			return unitserr.New(unitserr.BadFile, "!include with no file").WithLocation(file, lineNum)
		}
		return st.include(fields[1], file, lineNum, depth)

	default:
		return unitserr.New(unitserr.BadFile, "unknown directive '!%s'", directive).WithLocation(file, lineNum)
	}
}

func (st *loadState) include(target, fromFile string, lineNum, depth int) error {
	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(fromFile), target)
	}
	err := st.loadFile(path, depth+1)
	if err != nil {
		return unitserr.Wrap(unitserr.BadFile, err, "in !include from '%s' line %d", fromFile, lineNum)
	}
	return nil
}

// defineEntry dispatches on name shape: "prefix-" declares a prefix,
// "name[co-unit]" declares a table, "name(param)" declares a functional
// form, and anything else declares a plain unit.
func (st *loadState) defineEntry(name, body string, loc Location) error {
	if m := prefixShape.FindStringSubmatch(name); m != nil {
		text := m[1]
		if startsWithDigitOrDot(text) {
			return unitserr.New(unitserr.BadFile, "prefix '%s-' starts with a digit", text).WithLocation(loc.File, loc.Line)
		}
		return st.db.AddPrefix(&Prefix{Text: text, Body: body, Loc: loc})
	}

	if m := tableShape.FindStringSubmatch(name); m != nil {
		return st.defineTable(m[1], m[2], body, loc)
	}

	if m := functionShape.FindStringSubmatch(name); m != nil {
		return st.defineFunction(m[1], m[2], body, loc)
	}

	if startsWithDigitOrDot(name) {
		return unitserr.New(unitserr.BadFile, "unit '%s' starts with a digit", name).WithLocation(loc.File, loc.Line)
	}

	u := &Unit{Name: name, Body: body, Loc: loc}
	if idx := strings.IndexByte(body, PrimitiveMark); idx >= 0 {
		u.Primitive = true
		u.Dimension = strings.TrimSpace(body[idx+1:])
	}
	return st.db.AddUnit(u)
}

func startsWithDigitOrDot(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '.' || (c >= '0' && c <= '9')
}

func (st *loadState) defineTable(name, coUnit, body string, loc Location) error {
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields)%2 != 0 || len(fields) < 4 {
		return unitserr.New(unitserr.BadTable, "table '%s' needs an even number of x y values (at least two points)", name).WithLocation(loc.File, loc.Line)
	}
	points := make([]TablePoint, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return unitserr.New(unitserr.BadTable, "table '%s' has non-numeric x value '%s'", name, fields[i]).WithLocation(loc.File, loc.Line)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return unitserr.New(unitserr.BadTable, "table '%s' has non-numeric y value '%s'", name, fields[i+1]).WithLocation(loc.File, loc.Line)
		}
		if len(points) > 0 && x <= points[len(points)-1].X {
			return unitserr.New(unitserr.BadTable, "table '%s' x values are not strictly increasing", name).WithLocation(loc.File, loc.Line)
		}
		points = append(points, TablePoint{X: x, Y: y})
	}
	return st.db.AddFunction(&Function{
		Name: name, Loc: loc, IsTable: true, CoUnit: strings.TrimSpace(coUnit), Points: points,
	})
}

func (st *loadState) defineFunction(name, param, body string, loc Location) error {
	dimFwd, dimInv, rest, err := parseFuncDims(body)
	if err != nil {
		return unitserr.New(unitserr.FunArgDef, "function '%s': %v", name, err).WithLocation(loc.File, loc.Line)
	}
	parts := strings.SplitN(rest, ";", 2)
	fwdBody := strings.TrimSpace(parts[0])
	if fwdBody == "" {
		return unitserr.New(unitserr.FunArgDef, "function '%s' has no forward definition", name).WithLocation(loc.File, loc.Line)
	}
	fn := &Function{
		Name: name, Loc: loc,
		Forward: &Branch{Param: param, Body: fwdBody, Dimension: dimFwd},
	}
	if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
		fn.Inverse = &Branch{Param: param, Body: strings.TrimSpace(parts[1]), Dimension: dimInv}
	}
	return st.db.AddFunction(fn)
}

// parseFuncDims consumes an optional leading "[DIM]" or "[DIM_IN;DIM_OUT]"
// tag and returns the input dimension, the output dimension (defaults to
// the input dimension when only one is given), and the remaining text.
func parseFuncDims(body string) (dimIn, dimOut, rest string, err error) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "[") {
		return "", "", body, nil
	}
	end := strings.IndexByte(body, ']')
	if end < 0 {
		return "", "", "", fmt.Errorf("unterminated dimension tag")
	}
	tag := body[1:end]
	rest = strings.TrimSpace(body[end+1:])
	if semi := strings.IndexByte(tag, ';'); semi >= 0 {
		return strings.TrimSpace(tag[:semi]), strings.TrimSpace(tag[semi+1:]), rest, nil
	}
	return strings.TrimSpace(tag), strings.TrimSpace(tag), rest, nil
}
