package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkVerboseOutput bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the units database for consistency",
	Long: `check runs the database integrity checks: every unit and prefix
must reduce to primitives, every
interpolation table must be strictly monotonic, and every function with
an inverse must round-trip a fixed test value within 1e-12. Function
bodies are exercised only through that round trip.

Use --verbose to also print non-fatal warnings (ambiguous '-' usage,
unparenthesized '/' in a prefix body).`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkVerboseOutput, "verbose", false, "also print warnings")
}

func runCheck(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	report := eng.Check()
	for _, e := range report.Errors {
		fmt.Printf("error: %s\n", e)
	}
	if checkVerboseOutput {
		for _, w := range report.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
	}

	if !report.OK() {
		return fmt.Errorf("database check failed with %d error(s)", len(report.Errors))
	}
	fmt.Printf("database check passed (%d warning(s))\n", len(report.Warnings))
	return nil
}
