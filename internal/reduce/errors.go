package reduce

import "github.com/ryantenney/go-units/internal/unitserr"

func errUnknownUnit(name string) error {
	return unitserr.New(unitserr.UnknownUnit, "unknown unit '%s'", name).WithName(name)
}
