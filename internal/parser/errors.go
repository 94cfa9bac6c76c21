package parser

import "github.com/ryantenney/go-units/internal/unitserr"

func errParseMem(max int) error {
	return unitserr.New(unitserr.ParseMem, "parser recursion exceeded %d levels", max)
}

func errParse(source string, offset int, format string, args ...any) error {
	return unitserr.New(unitserr.Parse, format, args...).WithOffset(source, offset)
}

func errNotANumber(source string, offset int, what string) error {
	return unitserr.New(unitserr.NotANumber, "%s is not a number", what).WithOffset(source, offset)
}

func errNotRoot(source string, offset int) error {
	return unitserr.New(unitserr.NotRoot, "requested root does not evenly divide every exponent").WithOffset(source, offset)
}
