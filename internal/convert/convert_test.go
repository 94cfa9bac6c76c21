package convert

import (
	"testing"

	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/unit"
)

func TestCompareIgnoreDimlessSkipsRadian(t *testing.T) {
	db := database.New("")
	if err := db.AddUnit(&database.Unit{Name: "radian", Body: database.DimensionlessTag}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	a := unit.NewAtom("meter")
	b := &unit.Value{Factor: 1, Num: []unit.Atom{"meter", "radian"}}
	if !Compare(a, b, IgnoreDimless(db)) {
		t.Fatal("expected meter and meter*radian to be conformable under ignore-dimless")
	}
	if Compare(a, b, IgnoreNothing) {
		t.Fatal("expected meter and meter*radian to differ under ignore-nothing")
	}
}

func TestConvertDirectConformable(t *testing.T) {
	db := database.New("")
	have := &unit.Value{Factor: 15.24, Num: []unit.Atom{"meter"}}
	want := &unit.Value{Factor: 0.01, Num: []unit.Atom{"meter"}}
	r := Convert(db, have, want, false)
	if r.Outcome != Conformable {
		t.Fatalf("expected Conformable, got %v", r.Outcome)
	}
	if r.Factor < 1523.9 || r.Factor > 1524.1 {
		t.Fatalf("got factor %v", r.Factor)
	}
}

func TestConvertReciprocalFallback(t *testing.T) {
	db := database.New("")
	have := &unit.Value{Factor: 1, Num: []unit.Atom{"second"}}
	want := &unit.Value{Factor: 1, Denom: []unit.Atom{"second"}}
	r := Convert(db, have, want, false)
	if r.Outcome != ReciprocalConformable {
		t.Fatalf("expected ReciprocalConformable, got %v", r.Outcome)
	}
}

func TestConvertStrictDisablesReciprocal(t *testing.T) {
	db := database.New("")
	have := &unit.Value{Factor: 1, Num: []unit.Atom{"second"}}
	want := &unit.Value{Factor: 1, Denom: []unit.Atom{"second"}}
	r := Convert(db, have, want, true)
	if r.Outcome != NotConformable {
		t.Fatalf("expected NotConformable under strict, got %v", r.Outcome)
	}
}

func TestConvertNonConformable(t *testing.T) {
	db := database.New("")
	have := unit.NewAtom("meter")
	want := unit.NewAtom("second")
	r := Convert(db, have, want, false)
	if r.Outcome != NotConformable {
		t.Fatalf("expected NotConformable, got %v", r.Outcome)
	}
}
