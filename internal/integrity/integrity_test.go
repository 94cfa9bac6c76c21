package integrity

import (
	"testing"

	"github.com/ryantenney/go-units/internal/database"
)

func TestCheckReportsGoodDatabaseClean(t *testing.T) {
	db := database.New("")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	must(db.AddUnit(&database.Unit{Name: "meter", Body: "!dimensionless", Primitive: true}))
	must(db.AddPrefix(&database.Prefix{Text: "cm", Body: "0.01 meter"}))
	must(db.AddUnit(&database.Unit{Name: "inch", Body: "2.54 cm"}))

	report := Check(db)
	if !report.OK() {
		t.Fatalf("expected a clean report, got errors: %v", report.Errors)
	}
}

func TestCheckDetectsUnknownUnitInDefinition(t *testing.T) {
	db := database.New("")
	if err := db.AddUnit(&database.Unit{Name: "bogus", Body: "nosuchunit"}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	report := Check(db)
	if report.OK() {
		t.Fatal("expected an error for a definition referencing an unknown unit")
	}
}

func TestCheckDetectsNonMonotonicTable(t *testing.T) {
	db := database.New("")
	if err := db.AddUnit(&database.Unit{Name: "degC", Body: "!dimensionless"}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := db.AddFunction(&database.Function{
		Name:    "bad",
		IsTable: true,
		CoUnit:  "degC",
		Points: []database.TablePoint{
			{X: 0, Y: 0},
			{X: 1, Y: 5},
			{X: 2, Y: 3},
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	report := Check(db)
	if report.OK() {
		t.Fatal("expected an error for a non-monotonic table")
	}
}

func TestCheckWarnsOnTopLevelSlashInPrefix(t *testing.T) {
	db := database.New("")
	if err := db.AddPrefix(&database.Prefix{Text: "odd", Body: "1 / 2 meter"}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	report := Check(db)
	if len(report.Warnings) == 0 {
		t.Fatal("expected a warning for an unparenthesized '/' in a prefix body")
	}
}
