package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/kerbaras/anitrack/pkg/library"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the anime in your watchlist",
	Long:  "Display your watchlist in a formatted table, filtered, searched and sorted like the TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filterFlag, _ := cmd.Flags().GetString("filter")
		sortFlag, _ := cmd.Flags().GetString("sort")
		search, _ := cmd.Flags().GetString("search")

		filter, err := library.ParseFilter(filterFlag)
		if err != nil {
			return err
		}
		sort, err := library.ParseSort(sortFlag)
		if err != nil {
			return err
		}

		controller, err := openWatchlist(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		all := controller.Animes()
		items := library.Apply(all, filter, sort, search)
		out := cmd.OutOrStdout()

		if len(items) == 0 {
			if len(all) == 0 {
				fmt.Fprintln(out, "📺 Your watchlist is empty. Use 'anitrack add' to get started.")
			} else {
				fmt.Fprintf(out, "📺 No anime match the %q filter and current search.\n", filter)
			}
			return nil
		}

		columns := []table.Column{
			{Title: "ID", Width: 36},
			{Title: "Title", Width: 32},
			{Title: "Status", Width: 14},
			{Title: "Progress", Width: 22},
		}

		rows := make([]table.Row, 0, len(items))
		for _, a := range items {
			rows = append(rows, table.Row{
				a.ID,
				truncateString(a.Title, 30),
				styles.StatusLabel(a.WatchedCount(), a.TotalEpisodes),
				fmt.Sprintf("%d/%d (%.0f%%)", a.WatchedCount(), a.TotalEpisodes, a.Progress()),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)+2),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(styles.Muted).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.NoColor{}).
			Bold(false)
		t.SetStyles(s)

		fmt.Fprintf(out, "\n📺 Watchlist · %s · %s (%d of %d)\n\n", filter, sort, len(items), len(all))
		fmt.Fprintln(out, t.View())
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("filter", "f", "active", "active, all, watching, completed or plan")
	listCmd.Flags().StringP("sort", "s", "az", "az, za or progress")
	listCmd.Flags().StringP("search", "q", "", "case-insensitive title search")
}
