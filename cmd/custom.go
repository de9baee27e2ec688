package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/syscleaner/internal/clean"
	"github.com/lakshaymaurya-felt/syscleaner/internal/guard"
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage custom cleanup paths",
	Long:  "List, add and remove the files and folders cleaned under \"Custom paths\". Changes are saved on exit.",
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		custom := a.engine.Discover().Custom()
		if custom == nil || len(custom.Options) == 0 {
			fmt.Fprintln(out, "  No custom paths.")
			return nil
		}
		for _, opt := range custom.Options {
			full, _ := a.engine.DisplayPath(opt.ID)
			fmt.Fprintf(out, "  %-24s %s\n", opt.Name, full)
		}
		return nil
	},
}

var customAddCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Add files or folders",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.engine.Discover()
		out := cmd.OutOrStdout()
		failed := 0
		for _, p := range args {
			opt, err := a.engine.AddCustomPath(p)
			var rej *guard.Rejection
			switch {
			case errors.As(err, &rej):
				fmt.Fprintf(out, "  ✗ %s: %s\n", p, rej.Reason)
				failed++
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "  ✓ %s\n", opt.Name)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d paths rejected", failed, len(args))
		}
		return nil
	},
}

var customRemoveCmd = &cobra.Command{
	Use:   "remove <path>...",
	Short: "Remove custom paths (files on disk are not touched)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		custom := a.engine.Discover().Custom()
		out := cmd.OutOrStdout()
		for _, p := range args {
			opt, ok := findCustom(a.engine, custom, p)
			if !ok {
				fmt.Fprintf(out, "  ✗ %s: not a custom path\n", p)
				continue
			}
			a.engine.RemoveCustomPath(opt.ID)
			fmt.Fprintf(out, "  ✓ removed %s\n", opt.Name)
		}
		return nil
	},
}

func init() {
	customCmd.AddCommand(customListCmd, customAddCmd, customRemoveCmd)
}

// findCustom matches p against the registered custom paths by spelling,
// then by file identity.
func findCustom(e *clean.Engine, custom *clean.CleaningItem, p string) (clean.CleanOption, bool) {
	if custom == nil {
		return clean.CleanOption{}, false
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	target, statErr := os.Stat(p)
	for _, opt := range custom.Options {
		full, _ := e.DisplayPath(opt.ID)
		if guard.Within(full, p) && guard.Within(p, full) {
			return opt, true
		}
		if statErr != nil {
			continue
		}
		if info, err := os.Stat(full); err == nil && os.SameFile(info, target) {
			return opt, true
		}
	}
	return clean.CleanOption{}, false
}
