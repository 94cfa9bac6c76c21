package convert

import (
	"fmt"
	"strings"
)

// FormatNumber renders f with a printf-style numeric format (the CLI's
// --output-format flag); an empty format selects the default "%.8g".
func FormatNumber(f float64, format string) string {
	if format == "" {
		format = "%.8g"
	}
	return fmt.Sprintf(format, f)
}

// Render renders a Report as the CLI's output text. verbose 0 prints bare
// numbers; 1 and 2 both print the "\t* factor" / "\t/ reciprocal" lines,
// preceded by "reciprocal conversion" when only the reciprocal matched,
// and render identically. oneLine suppresses the reciprocal line.
func Render(r *Report, verbose int, oneLine bool, format string) string {
	var sb strings.Builder

	if r.Outcome == NotConformable {
		sb.WriteString("conformability error\n")
		fmt.Fprintf(&sb, "\t%s\n", r.Have.String())
		fmt.Fprintf(&sb, "\t%s\n", r.Want.String())
		return sb.String()
	}

	if r.Outcome == ReciprocalConformable && verbose >= 1 {
		sb.WriteString("reciprocal conversion\n")
	}

	factorText := FormatNumber(r.Factor, format)
	reciprocalText := FormatNumber(r.Reciprocal, format)

	if verbose == 0 {
		sb.WriteString(factorText)
		sb.WriteByte('\n')
		if !oneLine {
			sb.WriteString(reciprocalText)
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "\t* %s\n", factorText)
	if !oneLine {
		fmt.Fprintf(&sb, "\t/ %s\n", reciprocalText)
	}
	return sb.String()
}
