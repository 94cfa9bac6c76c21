package cmd

import (
	"fmt"

	"github.com/ryantenney/go-units/internal/search"
	"github.com/spf13/cobra"
)

var searchPage int

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "List defined names containing a substring",
	Long: `search lists every unit, prefix, and function name that contains
term as a case-sensitive substring, sorted and paginated.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "zero-based result page")
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	results := eng.Substring(args[0])
	page := search.Page(results, searchPage, search.PageSize)
	if len(page) == 0 {
		return fmt.Errorf("no matches for %q", args[0])
	}
	for _, name := range page {
		fmt.Println(name)
	}
	if len(results) > (searchPage+1)*search.PageSize {
		fmt.Printf("... %d more (use --page %d)\n", len(results)-(searchPage+1)*search.PageSize, searchPage+1)
	}
	return nil
}
