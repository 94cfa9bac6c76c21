package reduce

import (
	"testing"

	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/unit"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db := database.New("")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(db.AddUnit(&database.Unit{Name: "meter", Body: "!dimensionless", Primitive: true}))
	must(db.AddUnit(&database.Unit{Name: "inch", Body: "2.54 cm"}))
	must(db.AddUnit(&database.Unit{Name: "foot", Body: "12 inch"}))
	must(db.AddPrefix(&database.Prefix{Text: "cm", Body: "0.01 meter"}))
	return db
}

func TestReduceResolvesChainedDefinitions(t *testing.T) {
	db := newTestDB(t)
	r := New(db)
	ctx := parser.NewContext(parser.Config{}, nil, r)

	v := unit.NewAtom("foot")
	if err := r.Reduce(ctx, v); err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if len(v.Num) != 1 || v.Num[0] != "meter" {
		t.Fatalf("expected foot to reduce to meter, got %+v", v.Num)
	}
	want := 12 * 2.54 * 0.01
	if v.Factor < want-1e-9 || v.Factor > want+1e-9 {
		t.Fatalf("got factor %v, want %v", v.Factor, want)
	}
}

func TestReduceUnknownUnitErrors(t *testing.T) {
	db := newTestDB(t)
	r := New(db)
	ctx := parser.NewContext(parser.Config{}, nil, r)

	v := unit.NewAtom("bogus")
	if err := r.Reduce(ctx, v); err == nil {
		t.Fatal("expected an unknown-unit error")
	}
}

func TestReduceCancelsAcrossNumeratorAndDenominator(t *testing.T) {
	db := newTestDB(t)
	r := New(db)
	ctx := parser.NewContext(parser.Config{}, nil, r)

	v := unit.NewAtom("inch")
	if err := v.Div(unit.NewAtom("inch")); err != nil {
		t.Fatalf("Div: %v", err)
	}
	if err := r.Reduce(ctx, v); err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if !v.IsNumeric() {
		t.Fatalf("expected inch/inch to cancel to a pure scalar, got %+v", v)
	}
}
