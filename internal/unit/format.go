package unit

import "strconv"

// trimFloat renders f with the shortest representation that round-trips,
// matching how a conversion factor is normally displayed (no forced
// trailing zeros, no unnecessary precision).
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
