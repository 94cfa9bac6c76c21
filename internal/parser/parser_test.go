package parser

import (
	"testing"

	"github.com/ryantenney/go-units/internal/unit"
)

type stubFuncs struct {
	names map[string]func(arg *unit.Value, inverse bool) (*unit.Value, error)
}

func (s *stubFuncs) HasFunc(name string) bool { _, ok := s.names[name]; return ok }

func (s *stubFuncs) Apply(ctx *Context, name string, arg *unit.Value, inverse bool) (*unit.Value, error) {
	return s.names[name](arg, inverse)
}

func parseWith(t *testing.T, input string, cfg Config, funcs FuncApplier) *unit.Value {
	t.Helper()
	ctx := NewContext(cfg, funcs, nil)
	v, err := New(input, ctx).Parse()
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return v
}

func TestParseJuxtapositionMultiplies(t *testing.T) {
	v := parseWith(t, "2 meter", Config{}, nil)
	if v.Factor != 2 || len(v.Num) != 1 || v.Num[0] != "meter" {
		t.Fatalf("got %+v", v)
	}
}

func TestParseImplicitExponent(t *testing.T) {
	v := parseWith(t, "cm3", Config{}, nil)
	if v.Factor != 1 || len(v.Num) != 3 {
		t.Fatalf("got %+v", v)
	}
	for _, a := range v.Num {
		if a != "cm" {
			t.Fatalf("expected all cm atoms, got %+v", v.Num)
		}
	}
}

func TestParseRatioNumber(t *testing.T) {
	v := parseWith(t, "1|2 foot", Config{}, nil)
	if v.Factor != 0.5 || len(v.Num) != 1 || v.Num[0] != "foot" {
		t.Fatalf("got %+v", v)
	}
}

func TestParseSlashDivides(t *testing.T) {
	v := parseWith(t, "meter / second", Config{}, nil)
	if len(v.Num) != 1 || v.Num[0] != "meter" {
		t.Fatalf("got %+v", v)
	}
	if len(v.Denom) != 1 || v.Denom[0] != "second" {
		t.Fatalf("got %+v", v)
	}
}

func TestParseCaretInteger(t *testing.T) {
	v := parseWith(t, "meter^2", Config{}, nil)
	if len(v.Num) != 2 || v.Num[0] != "meter" || v.Num[1] != "meter" {
		t.Fatalf("got %+v", v)
	}
}

func TestParseParensGrouping(t *testing.T) {
	v := parseWith(t, "(meter/second)^2", Config{}, nil)
	if len(v.Num) != 2 || len(v.Denom) != 2 {
		t.Fatalf("got %+v", v)
	}
}

func TestParseMinusRequiresConfig(t *testing.T) {
	ctx := NewContext(Config{Minus: false}, nil, nil)
	p := New("5-3", ctx)
	v, err := p.Parse()
	if err == nil {
		t.Fatalf("expected a trailing-token parse error, got value %+v", v)
	}
}

func TestParseMinusSubtractsWhenEnabled(t *testing.T) {
	v := parseWith(t, "5-3", Config{Minus: true}, nil)
	if v.Factor != 2 {
		t.Fatalf("got factor %v", v.Factor)
	}
}

func TestParsePlusMinusAlwaysSubtracts(t *testing.T) {
	v := parseWith(t, "5 +- 3", Config{}, nil)
	if v.Factor != 2 {
		t.Fatalf("got factor %v", v.Factor)
	}
}

func TestParseOldStarPrecedence(t *testing.T) {
	// Under oldstar, "a/b*c" groups as a/(b*c), while the flat reading
	// gives (a/b)*c. With three distinct atoms the groupings differ:
	// meter / (second*minute) puts both second and minute in the
	// denominator, where the flat reading would put minute in the numerator.
	v := parseWith(t, "meter / second * minute", Config{OldStar: true}, nil)
	if len(v.Num) != 1 || v.Num[0] != "meter" {
		t.Fatalf("got num %+v", v.Num)
	}
	if len(v.Denom) != 2 {
		t.Fatalf("expected denom of second*minute, got %+v", v.Denom)
	}
}

func TestParseFunctionCall(t *testing.T) {
	funcs := &stubFuncs{names: map[string]func(*unit.Value, bool) (*unit.Value, error){
		"double": func(arg *unit.Value, inverse bool) (*unit.Value, error) {
			out := arg.Clone()
			out.Factor *= 2
			return out, nil
		},
	}}
	v := parseWith(t, "double(3)", Config{}, funcs)
	if v.Factor != 6 {
		t.Fatalf("got %+v", v)
	}
}

func TestParseBareInverseAppliesToOne(t *testing.T) {
	funcs := &stubFuncs{names: map[string]func(*unit.Value, bool) (*unit.Value, error){
		"half": func(arg *unit.Value, inverse bool) (*unit.Value, error) {
			out := arg.Clone()
			if inverse {
				out.Factor *= 10
			}
			return out, nil
		},
	}}
	v := parseWith(t, "~half", Config{}, funcs)
	if v.Factor != 10 {
		t.Fatalf("got %+v", v)
	}
}

func TestParseUnknownFunctionErrors(t *testing.T) {
	ctx := NewContext(Config{}, &stubFuncs{names: map[string]func(*unit.Value, bool) (*unit.Value, error){}}, nil)
	_, err := New("bogus(1)", ctx).Parse()
	if err == nil {
		t.Fatal("expected an error for an unknown function name")
	}
}

func TestParseTrailingGarbageErrors(t *testing.T) {
	ctx := NewContext(Config{}, nil, nil)
	_, err := New("meter )", ctx).Parse()
	if err == nil {
		t.Fatal("expected a trailing-token error")
	}
}
