package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/syscleaner/internal/clean"
)

// addCategoryFlags registers the category filter flags shared by analyze
// and clean.
func addCategoryFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("browser", false, "Browser caches, cookies and history only")
	cmd.Flags().Bool("temp", false, "Temp files, update cache and logs only")
	cmd.Flags().Bool("system", false, "Prefetch and recycle bin only")
	cmd.Flags().Bool("custom", false, "Custom paths only")
}

// selectedKinds returns the categories picked by flags; none means all.
func selectedKinds(cmd *cobra.Command) []clean.ItemKind {
	var kinds []clean.ItemKind
	for name, kind := range map[string]clean.ItemKind{
		"browser": clean.KindBrowser,
		"temp":    clean.KindTemp,
		"system":  clean.KindSystem,
		"custom":  clean.KindCustomPath,
	} {
		if on, _ := cmd.Flags().GetBool(name); on {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
