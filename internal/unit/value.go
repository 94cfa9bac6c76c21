// Package unit implements the data model of a unit value: a rational
// product of symbolic atoms plus a scalar factor, per the "Value"
// component of the units algebra engine.
package unit

import (
	"math"
	"sort"
	"strings"
)

// nthRoot computes the real nth root of f, including for negative f when
// n is odd (math.Pow doesn't handle that case).
func nthRoot(f float64, n int) float64 {
	if f < 0 && n%2 != 0 {
		return -math.Pow(-f, 1/float64(n))
	}
	return math.Pow(f, 1/float64(n))
}

// Atom is an immutable identifier naming a unit. The sentinel Cancelled
// marks slots emptied during cancellation; consumers must skip it rather
// than treat it as a real name.
type Atom string

// Cancelled is never a legal database name (it starts with a digit-unsafe
// control byte), so it can never collide with a real atom.
const Cancelled Atom = "\x00cancelled\x00"

// MaxSubunits bounds the length of a single numerator or denominator
// sequence. It defaults to 0 (unlimited, slices grow dynamically); set it
// to a fixed cap (the classic value is 100) to make ProdOverflow
// observable against pathological inputs, as a fixed-capacity array
// would.
var MaxSubunits = 0

// Value is a scalar factor together with the numerator and denominator
// atom sequences it multiplies. Atoms are not required to be sorted or
// cancelled until Canonicalize is called.
type Value struct {
	Factor float64
	Num    []Atom
	Denom  []Atom
}

// New returns a dimensionless Value equal to factor.
func New(factor float64) *Value {
	return &Value{Factor: factor}
}

// NewAtom returns a Value equal to 1 * atom.
func NewAtom(a Atom) *Value {
	return &Value{Factor: 1, Num: []Atom{a}}
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	c := &Value{Factor: v.Factor}
	c.Num = append(c.Num, v.Num...)
	c.Denom = append(c.Denom, v.Denom...)
	return c
}

// Mul multiplies v by other in place and empties other's sequences; the
// Value shell itself is not reused, just drained of its atoms.
func (v *Value) Mul(other *Value) error {
	v.Factor *= other.Factor
	if err := appendChecked(&v.Num, other.Num); err != nil {
		return err
	}
	if err := appendChecked(&v.Denom, other.Denom); err != nil {
		return err
	}
	other.Num = other.Num[:0]
	other.Denom = other.Denom[:0]
	return nil
}

// Div divides v by other in place (v *= 1/other) and empties other.
func (v *Value) Div(other *Value) error {
	v.Factor /= other.Factor
	if err := appendChecked(&v.Num, other.Denom); err != nil {
		return err
	}
	if err := appendChecked(&v.Denom, other.Num); err != nil {
		return err
	}
	other.Num = other.Num[:0]
	other.Denom = other.Denom[:0]
	return nil
}

func appendChecked(dst *[]Atom, src []Atom) error {
	for _, a := range src {
		if a == Cancelled {
			continue
		}
		if MaxSubunits > 0 && len(*dst) >= MaxSubunits {
			return errProdOverflow()
		}
		*dst = append(*dst, a)
	}
	return nil
}

// Invert returns 1/v: numerator and denominator swap and the factor
// reciprocates. v itself is left untouched.
func (v *Value) Invert() *Value {
	return &Value{
		Factor: 1 / v.Factor,
		Num:    append([]Atom{}, v.Denom...),
		Denom:  append([]Atom{}, v.Num...),
	}
}

// Pow raises v to an integer power by repeated multiplication, since
// unit exponents are always small.
func (v *Value) Pow(p int) error {
	if p == 0 {
		*v = Value{Factor: 1}
		return nil
	}
	neg := p < 0
	if neg {
		p = -p
	}
	base := v.Clone()
	result := New(1)
	for i := 0; i < p; i++ {
		if err := result.Mul(base.Clone()); err != nil {
			return err
		}
	}
	if neg {
		result = result.Invert()
	}
	*v = *result
	return nil
}

// Root replaces v with its nth root: every atom's multiplicity in both
// sequences must be divisible by n (else the error returned by notRoot is
// returned), and the factor takes a real nth root — which is only
// defined for n odd when the factor is negative.
func (v *Value) Root(n int, notRoot func() error, notANumber func() error) error {
	if n == 0 {
		return notRoot()
	}
	numCounts := multiplicities(v.Num)
	denCounts := multiplicities(v.Denom)
	for _, c := range numCounts {
		if c%n != 0 {
			return notRoot()
		}
	}
	for _, c := range denCounts {
		if c%n != 0 {
			return notRoot()
		}
	}
	if v.Factor < 0 && n%2 == 0 {
		return notANumber()
	}
	v.Num = expandCounts(numCounts, n)
	v.Denom = expandCounts(denCounts, n)
	v.Factor = nthRoot(v.Factor, n)
	return nil
}

// Pow2 raises a purely numeric v to a non-integer real power f. Callers
// must check IsNumeric first; Pow2 never touches Num/Denom.
func (v *Value) Pow2(f float64) error {
	v.Factor = math.Pow(v.Factor, f)
	return nil
}

func multiplicities(atoms []Atom) map[Atom]int {
	m := make(map[Atom]int)
	for _, a := range atoms {
		if a != Cancelled {
			m[a]++
		}
	}
	return m
}

func expandCounts(counts map[Atom]int, n int) []Atom {
	var out []Atom
	for a, c := range counts {
		for i := 0; i < c/n; i++ {
			out = append(out, a)
		}
	}
	return out
}

// IsNumeric reports whether v has no live (non-Cancelled) atoms in either
// sequence, i.e. is a pure scalar.
func (v *Value) IsNumeric() bool {
	return liveCount(v.Num) == 0 && liveCount(v.Denom) == 0
}

func liveCount(atoms []Atom) int {
	n := 0
	for _, a := range atoms {
		if a != Cancelled {
			n++
		}
	}
	return n
}

// Sort lexicographically orders the live atoms of both sequences,
// compacting away Cancelled slots. This is the first half of
// canonicalization (§4.4's "sort numerator and denominator
// lexicographically").
func (v *Value) Sort() {
	v.Num = compactSorted(v.Num)
	v.Denom = compactSorted(v.Denom)
}

func compactSorted(atoms []Atom) []Atom {
	out := make([]Atom, 0, len(atoms))
	for _, a := range atoms {
		if a != Cancelled {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Cancel walks the sorted numerator and denominator in parallel and
// removes any atom that appears, once, in both — the second half of
// canonicalization. Sort must be called first.
func (v *Value) Cancel() {
	var num, denom []Atom
	i, j := 0, 0
	for i < len(v.Num) && j < len(v.Denom) {
		switch {
		case v.Num[i] < v.Denom[j]:
			num = append(num, v.Num[i])
			i++
		case v.Num[i] > v.Denom[j]:
			denom = append(denom, v.Denom[j])
			j++
		default:
			// equal: cancel one instance from each side
			i++
			j++
		}
	}
	num = append(num, v.Num[i:]...)
	denom = append(denom, v.Denom[j:]...)
	v.Num = num
	v.Denom = denom
}

// Canonicalize sorts then cancels, producing the normal form a fully
// reduced Value must have: lexicographically sorted atoms with no name
// appearing in both numerator and denominator.
func (v *Value) Canonicalize() {
	v.Sort()
	v.Cancel()
}

// String renders a Value as "factor num1 num2 / denom1 denom2".
func (v *Value) String() string {
	var sb strings.Builder
	sb.WriteString(formatFactor(v.Factor))
	for _, a := range v.Num {
		if a == Cancelled {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(string(a))
	}
	if liveCount(v.Denom) > 0 {
		sb.WriteString(" /")
		for _, a := range v.Denom {
			if a == Cancelled {
				continue
			}
			sb.WriteByte(' ')
			sb.WriteString(string(a))
		}
	}
	return sb.String()
}

func formatFactor(f float64) string {
	return trimFloat(f)
}
