package function

import (
	"testing"

	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/parser"
	"github.com/ryantenney/go-units/internal/reduce"
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
	must(db.AddUnit(&database.Unit{Name: "degC", Body: "!dimensionless"}))
	must(db.AddFunction(&database.Function{
		Name: "tempF",
		Forward: &database.Branch{
			Param: "x",
			Body:  "(x-32)*5/9 degC",
		},
		Inverse: &database.Branch{
			Param: "x",
			Body:  "x/degC*9/5+32",
		},
	}))
	must(db.AddFunction(&database.Function{
		Name:    "interp",
		IsTable: true,
		CoUnit:  "degC",
		Points: []database.TablePoint{
			{X: 0, Y: 0},
			{X: 100, Y: 100},
		},
	}))
	return db
}

func newCtx(db *database.DB) (*parser.Context, *Engine) {
	eng := New(db)
	r := reduce.New(db)
	return parser.NewContext(parser.Config{Minus: true}, eng, r), eng
}

func TestApplyFormForward(t *testing.T) {
	db := newTestDB(t)
	ctx, eng := newCtx(db)
	v, err := eng.Apply(ctx, "tempF", unit.New(212), false)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v.Factor < 99.9 || v.Factor > 100.1 {
		t.Fatalf("got factor %v, want ~100 degC", v.Factor)
	}
}

func TestApplyFormNoInverseErrors(t *testing.T) {
	db := database.New("")
	if err := db.AddFunction(&database.Function{
		Name:    "oneway",
		Forward: &database.Branch{Param: "x", Body: "x"},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	ctx, eng := newCtx(db)
	if _, err := eng.Apply(ctx, "oneway", unit.New(1), true); err == nil {
		t.Fatal("expected NO_INVERSE error")
	}
}

func TestApplyTableForwardInterpolates(t *testing.T) {
	db := newTestDB(t)
	ctx, eng := newCtx(db)
	v, err := eng.Apply(ctx, "interp", unit.New(50), false)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v.Factor < 49.9 || v.Factor > 50.1 {
		t.Fatalf("got factor %v, want ~50", v.Factor)
	}
}

func TestApplyTableOutOfDomainErrors(t *testing.T) {
	db := newTestDB(t)
	ctx, eng := newCtx(db)
	if _, err := eng.Apply(ctx, "interp", unit.New(500), false); err == nil {
		t.Fatal("expected NOT_IN_DOMAIN error")
	}
}
