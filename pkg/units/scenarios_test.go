package units

import (
	"math"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/ryantenney/go-units/internal/convert"
)

const fixtureDB = "../../testdata/definitions.units"

func loadFixture(t *testing.T) *Engine {
	t.Helper()
	eng, err := LoadFile(fixtureDB, "")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return eng
}

func closeEnough(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestScenarioInchesToCentimeters(t *testing.T) {
	eng := loadFixture(t)
	report, err := eng.Convert("6 inches", "cm", Config{Minus: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if report.Outcome != convert.Conformable {
		t.Fatalf("expected Conformable, got %v", report.Outcome)
	}
	if !closeEnough(report.Factor, 15.24, 1e-9) {
		t.Errorf("factor = %v, want 15.24", report.Factor)
	}
	if !closeEnough(report.Reciprocal, 0.06561679790026247, 1e-9) {
		t.Errorf("reciprocal = %v, want ~0.06561679", report.Reciprocal)
	}
	snaps.MatchSnapshot(t, "inches_to_cm", convert.Render(report, 1, false, ""))
}

func TestScenarioTempFToTempC(t *testing.T) {
	eng := loadFixture(t)
	report, err := eng.Convert("tempF(75)", "tempC", Config{Minus: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if report.Outcome != convert.Conformable {
		t.Fatalf("expected Conformable, got %v", report.Outcome)
	}
	if !closeEnough(report.Factor, 23.888888888888889, 1e-9) {
		t.Errorf("factor = %v, want ~23.8888", report.Factor)
	}
}

func TestScenarioHalfFootToInch(t *testing.T) {
	eng := loadFixture(t)
	report, err := eng.Convert("1|2 foot", "inch", Config{Minus: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if report.Outcome != convert.Conformable {
		t.Fatalf("expected Conformable, got %v", report.Outcome)
	}
	if !closeEnough(report.Factor, 6, 1e-9) {
		t.Errorf("factor = %v, want 6", report.Factor)
	}
}

func TestScenarioMeterToSecondNonConformable(t *testing.T) {
	eng := loadFixture(t)
	report, err := eng.Convert("meter", "second", Config{Minus: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if report.Outcome != convert.NotConformable {
		t.Fatalf("expected NotConformable, got %v", report.Outcome)
	}
}

func TestScenarioHzToSecondsStrictVsReciprocal(t *testing.T) {
	eng := loadFixture(t)

	strict, err := eng.Convert("Hz", "s", Config{Minus: true, Strict: true})
	if err != nil {
		t.Fatalf("Convert (strict): %v", err)
	}
	if strict.Outcome != convert.NotConformable {
		t.Fatalf("expected NotConformable under --strict, got %v", strict.Outcome)
	}

	loose, err := eng.Convert("Hz", "s", Config{Minus: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if loose.Outcome != convert.ReciprocalConformable {
		t.Fatalf("expected ReciprocalConformable without --strict, got %v", loose.Outcome)
	}
}

func TestScenarioDefinitionChainForInches(t *testing.T) {
	eng := loadFixture(t)
	_, value, err := eng.Define("6 inches", Config{Minus: true})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if value == nil {
		t.Fatal("expected a reduced value")
	}
	if len(value.Num) != 1 || value.Num[0] != "meter" {
		t.Fatalf("expected reduced form in meter, got %+v", value.Num)
	}
	if !closeEnough(value.Factor, 0.1524, 1e-9) {
		t.Errorf("factor = %v, want 0.1524", value.Factor)
	}
}
