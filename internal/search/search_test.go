package search

import (
	"testing"

	"github.com/ryantenney/go-units/internal/database"
	"github.com/ryantenney/go-units/internal/unit"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	db := database.New("")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(db.AddUnit(&database.Unit{Name: "meter", Body: "!", Primitive: true}))
	must(db.AddUnit(&database.Unit{Name: "second", Body: "!", Primitive: true}))
	must(db.AddPrefix(&database.Prefix{Text: "cm", Body: "0.01 meter"}))
	must(db.AddUnit(&database.Unit{Name: "inch", Body: "2.54 cm"}))
	must(db.AddUnit(&database.Unit{Name: "foot", Body: "12 inch"}))
	return db
}

func TestConformableFindsLengthUnits(t *testing.T) {
	db := testDB(t)
	target := unit.NewAtom("meter")
	got := Conformable(db, target)

	want := map[string]bool{"meter": true, "inch": true, "foot": true}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Fatalf("unexpected result %q in %v", name, got)
		}
	}
}

func TestConformableExcludesSecond(t *testing.T) {
	db := testDB(t)
	got := Conformable(db, unit.NewAtom("meter"))
	for _, name := range got {
		if name == "second" {
			t.Fatal("second should not conform with meter")
		}
	}
}

func TestSubstringMatchesAcrossKinds(t *testing.T) {
	db := testDB(t)
	got := Substring(db, "in")
	found := map[string]bool{}
	for _, n := range got {
		found[n] = true
	}
	if !found["inch"] {
		t.Fatalf("expected 'inch' in substring results, got %v", got)
	}
}

func TestPageSlicesResults(t *testing.T) {
	results := []string{"a", "b", "c", "d", "e"}
	got := Page(results, 1, 2)
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Fatalf("got %v", got)
	}
	if Page(results, 10, 2) != nil {
		t.Fatal("expected nil for an out-of-range page")
	}
}
