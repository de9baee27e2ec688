package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/syscleaner/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show drive usage",
	Long:  "Show used and free space of every fixed drive, with host information.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		refresh, _ := cmd.Flags().GetInt("refresh")

		if watch {
			p := tea.NewProgram(status.NewStatusModel(time.Duration(refresh) * time.Second))
			_, err := p.Run()
			return err
		}

		r, err := status.Collect(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), status.Render(r, 80))
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("watch", false, "Keep refreshing until q is pressed")
	statusCmd.Flags().Int("refresh", 2, "Refresh interval in seconds")
}
