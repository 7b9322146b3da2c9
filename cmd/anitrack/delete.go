package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id or title]",
	Aliases: []string{"rm"},
	Short:   "Delete an anime from your watchlist",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		controller, err := openWatchlist(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		anime, err := resolveAnime(controller, strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Are you sure you want to delete %q from your list? [y/N] ", anime.Title)
			answer, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := controller.Delete(cmd.Context(), anime.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "🗑  Deleted '%s'\n", anime.Title)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
