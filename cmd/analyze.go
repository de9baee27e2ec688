package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/syscleaner/internal/panel"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Measure reclaimable space",
	Long:  "Measure how many files and bytes each cleanable target holds without deleting anything.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		catalog := a.engine.Discover()
		catalog.Select(selectedKinds(cmd)...)

		s, err := a.runAndWait(cmd.Context(), os.Stderr, isTerminal(os.Stderr), a.engine.Analyze, catalog)
		if err != nil {
			return err
		}
		panel.PrintSummary(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	addCategoryFlags(analyzeCmd)
}
