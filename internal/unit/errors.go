package unit

import "github.com/ryantenney/go-units/internal/unitserr"

func errProdOverflow() error {
	return unitserr.New(unitserr.ProdOverflow, "unit product exceeded capacity of %d atoms", MaxSubunits)
}
