package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/syscleaner/internal/panel"
)

var (
	// Global flags
	debug   bool
	workers int

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "syscleaner",
	Short: "Find and remove reclaimable disk data",
	Long: `SysCleaner - find and remove reclaimable disk data.

Measures and cleans browser caches, cookies and history, temporary and
update files, logs, prefetch traces, the recycle bin and folders you add
yourself. Windows system and program folders can never be added.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without a terminal there is nothing to draw the panel on.
		if !isTerminal(os.Stdout) {
			return cmd.Help()
		}
		return runPanel()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Number of categories processed at once (default: CPU count)")

	// Register all subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(customCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// runPanel launches the full-screen interactive cleaner.
func runPanel() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	catalog := a.engine.Discover()
	p := tea.NewProgram(panel.New(a.engine, catalog), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run panel: %w", err)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
