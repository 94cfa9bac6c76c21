package function

import "github.com/ryantenney/go-units/internal/unitserr"

func errUnknownFunction(name string) error {
	return unitserr.New(unitserr.Parse, "unknown function '%s'", name).WithName(name)
}

func errBadTable(name string) error {
	return unitserr.New(unitserr.BadTable, "malformed table for function '%s'", name).WithName(name)
}

func errBadFuncArg(name string) error {
	return unitserr.New(unitserr.BadFuncArg, "argument to '%s' is not in the expected units", name).WithName(name)
}

func errNotInDomain(name string) error {
	return unitserr.New(unitserr.NotInDomain, "argument to '%s' is outside the table's domain", name).WithName(name)
}

func errNoInverse(name string) error {
	return unitserr.New(unitserr.NoInverse, "function '%s' has no inverse", name).WithName(name)
}

func errFunArgDef(name string) error {
	return unitserr.New(unitserr.FunArgDef, "error evaluating definition of function '%s'", name).WithName(name)
}
