package cli

import (
	"fmt"
	"sort"

	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/sourceimpl"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List supported data sources",
	Long:  "Display the data sources that can be injected with --source",
	Run:   runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) {
	kinds := datasource.Kinds()

	names := lo.Map(lo.Keys(kinds), func(k datasource.Kind, _ int) string {
		return k.String()
	})
	sort.Strings(names)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Data Sources:")
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, kinds[datasource.Kind(name)])
	}
	fmt.Fprintf(out, "\nDefault remote URL: %s\n", sourceimpl.DefaultURL)
}
