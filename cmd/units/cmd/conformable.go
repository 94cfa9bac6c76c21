package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var conformableCmd = &cobra.Command{
	Use:   "conformable <unit>",
	Short: "List every defined unit conformable with the given expression",
	Long: `conformable parses and reduces the given expression, then lists every
unit in the database whose reduced form is conformable with it, ignoring
dimensionless factors such as radians.`,
	Args: cobra.ExactArgs(1),
	RunE: runConformable,
}

func init() {
	rootCmd.AddCommand(conformableCmd)
}

func runConformable(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	target, err := eng.Eval(args[0], engineConfig())
	if err != nil {
		return err
	}
	target.Canonicalize()

	results := eng.Conformable(target)
	if len(results) == 0 {
		fmt.Println("(no conformable units found)")
		return nil
	}
	for _, name := range results {
		fmt.Println(name)
	}
	return nil
}
