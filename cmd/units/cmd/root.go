package cmd

import (
	"errors"
	"fmt"

	"github.com/ryantenney/go-units/internal/config"
	"github.com/ryantenney/go-units/internal/convert"
	"github.com/ryantenney/go-units/internal/unitserr"
	"github.com/ryantenney/go-units/pkg/units"
	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flagUnitsFile    string
	flagStrict       bool
	flagMinus        bool
	flagProduct      bool
	flagOldStar      bool
	flagNewStar      bool
	flagCompact      bool
	flagVerbose      bool
	flagOneLine      bool
	flagOutputFormat string
	flagExponential  bool
)

var rootCmd = &cobra.Command{
	Use:   "units [have] [want]",
	Short: "Convert between physical units",
	Long: `units converts quantities between physical units, evaluates
nonlinear unit functions (such as temperature scales), and can list or
check the units it knows about.

Usage:
  units                  # interactive mode: prompts for have/want in a loop
  units '6 inches'        # print the definition and reduced form of an expression
  units '6 inches' cm     # convert 6 inches to centimeters

Examples:
  units '1|2 foot' inch
  units 'tempF(75)' tempC
  units --strict Hz s`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

// usageError marks a failure that should exit 3 (bad arguments), as
// opposed to a conversion-domain failure, which exits 1.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// Execute runs the root command; each subcommand registers itself with
// rootCmd in its own init function.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCodeFor maps an error returned by Execute to a process exit code:
// 0 success, 1 conversion/file error, 3 usage or memory error.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var usage usageError
	if errors.As(err, &usage) {
		return 3
	}
	if unitserr.Is(err, unitserr.ParseMem) || unitserr.Is(err, unitserr.Memory) {
		return 3
	}
	return 1
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("units version {{.Version}}\ncommit: %s\nbuilt: %s\n", GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&flagUnitsFile, "units-file", "", "database file to load (overrides UNITSFILE)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "disable reciprocal-conversion fallback")
	rootCmd.PersistentFlags().BoolVar(&flagMinus, "minus", true, "'-' is a subtraction operator (default)")
	rootCmd.PersistentFlags().BoolVar(&flagProduct, "product", false, "'-' is an ordinary character, not an operator")
	rootCmd.PersistentFlags().BoolVar(&flagOldStar, "oldstar", false, "give '*' higher precedence than '/'")
	rootCmd.PersistentFlags().BoolVar(&flagNewStar, "newstar", false, "'*' and '/' share one precedence level (default)")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "bare-number output, verbosity 0")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "labelled output, verbosity 2")
	rootCmd.PersistentFlags().BoolVar(&flagOneLine, "one-line", false, "suppress the reciprocal output line")
	rootCmd.PersistentFlags().StringVar(&flagOutputFormat, "output-format", "", "printf-style numeric format, e.g. %.6g")
	rootCmd.PersistentFlags().BoolVar(&flagExponential, "exponential", false, "shorthand for --output-format %e")
}

// engineConfig translates the persistent flags into the façade's Config.
func engineConfig() units.Config {
	return units.Config{
		Minus:   flagMinus && !flagProduct,
		OldStar: flagOldStar && !flagNewStar,
		Strict:  flagStrict,
	}
}

func outputFormat() string {
	if flagExponential && flagOutputFormat == "" {
		return "%e"
	}
	return flagOutputFormat
}

func verbosity() int {
	switch {
	case flagCompact:
		return 0
	case flagVerbose:
		return 2
	default:
		return 1
	}
}

// loadEngine resolves the database location from flags/environment and
// loads it, layering a per-user overlay on top when one is present.
func loadEngine() (*units.Engine, error) {
	settings, err := config.Resolve(flagUnitsFile)
	if err != nil {
		return nil, err
	}

	eng, err := units.LoadFile(settings.DatabasePath, settings.Locale)
	if err != nil {
		return nil, err
	}

	if settings.OverlayPath != "" {
		if err := eng.LoadMore(settings.OverlayPath); err != nil {
			return nil, err
		}
	}
	for _, e := range eng.DB.Errors {
		fmt.Fprintln(rootCmd.ErrOrStderr(), e)
	}
	return eng, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if flagCompact && flagVerbose {
		return usageError{fmt.Errorf("--compact and --verbose/-v are mutually exclusive")}
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		return runInteractive(eng)
	case 1:
		return printDefinition(eng, args[0])
	default:
		return printConversion(eng, args[0], args[1])
	}
}

func printDefinition(eng *units.Engine, expr string) error {
	chain, value, err := eng.Define(expr, engineConfig())
	if err != nil {
		return err
	}
	for _, body := range chain {
		fmt.Printf("\t%s\n", body)
	}
	if value != nil {
		value.Canonicalize()
		fmt.Println(value.String())
	}
	return nil
}

func printConversion(eng *units.Engine, have, want string) error {
	report, err := eng.Convert(have, want, engineConfig())
	if err != nil {
		return err
	}
	fmt.Print(convert.Render(report, verbosity(), flagOneLine, outputFormat()))
	if report.Outcome == convert.NotConformable {
		return fmt.Errorf("conformability error")
	}
	return nil
}
