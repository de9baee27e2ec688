package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
	"github.com/lakshaymaurya-felt/syscleaner/internal/panel"
	"github.com/lakshaymaurya-felt/syscleaner/internal/status"
)

var (
	dryRun    bool
	assumeYes bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Free up disk space",
	Long:  "Delete the files of every selected target. Files that are in use or protected are left in place.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		catalog := a.engine.Discover()
		catalog.Select(selectedKinds(cmd)...)
		out := cmd.OutOrStdout()
		live := isTerminal(os.Stderr)

		if dryRun {
			s, err := a.runAndWait(cmd.Context(), os.Stderr, live, a.engine.Analyze, catalog)
			if err != nil {
				return err
			}
			panel.PrintSummary(out, s)
			fmt.Fprintln(out, "  Dry run: nothing was deleted.")
			return nil
		}

		if !assumeYes && !confirm(cmd, "Delete all selected targets? [y/N] ") {
			fmt.Fprintln(out, "  Cancelled.")
			return nil
		}

		root := a.locs.DriveRoot()
		before, beforeErr := status.Usage(cmd.Context(), root)

		s, err := a.runAndWait(cmd.Context(), os.Stderr, live, a.engine.Clean, catalog)
		if err != nil {
			return err
		}
		panel.PrintSummary(out, s)

		after, afterErr := status.Usage(cmd.Context(), root)
		if beforeErr != nil || afterErr != nil {
			a.log.Debug("free space not measured", zap.String("drive", root), zap.NamedError("before", beforeErr), zap.NamedError("after", afterErr))
			return nil
		}
		gained := int64(after.Free) - int64(before.Free)
		fmt.Fprintf(out, "  Free space on %s: %s → %s (+%s)\n", root,
			core.FormatSize(int64(before.Free)), core.FormatSize(int64(after.Free)), core.FormatSize(max(gained, 0)))
		return nil
	},
}

func init() {
	addCategoryFlags(cleanCmd)
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the cleanup without deleting")
	cleanCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), "  "+prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
