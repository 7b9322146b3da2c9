package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id or title]",
	Short: "Edit an anime's title, cover or episode count",
	Long:  "Change the fields given as flags. Lowering the episode count drops watched episodes past the new total.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("title") && !flags.Changed("image") && !flags.Changed("episodes") {
			return fmt.Errorf("nothing to change: pass --title, --image or --episodes")
		}

		controller, err := openWatchlist(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		current, err := resolveAnime(controller, strings.Join(args, " "))
		if err != nil {
			return err
		}

		in := data.AnimeInput{
			Title:         current.Title,
			ImageURL:      current.ImageURL,
			TotalEpisodes: current.TotalEpisodes,
		}
		if flags.Changed("title") {
			in.Title, _ = flags.GetString("title")
			in.Title = strings.TrimSpace(in.Title)
		}
		if flags.Changed("image") {
			in.ImageURL, _ = flags.GetString("image")
			in.ImageURL = strings.TrimSpace(in.ImageURL)
		}
		if flags.Changed("episodes") {
			in.TotalEpisodes, _ = flags.GetInt("episodes")
		}

		updated, err := controller.Edit(cmd.Context(), current.ID, in)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Updated '%s' (%d/%d watched)\n", updated.Title, updated.WatchedCount(), updated.TotalEpisodes)
		if dropped := current.WatchedCount() - updated.WatchedCount(); dropped > 0 {
			fmt.Fprintf(out, "   %d watched episode(s) past the new total were cleared\n", dropped)
		}
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("image", "i", "", "new cover image URL (empty removes it)")
	editCmd.Flags().IntP("episodes", "e", 0, "new total number of episodes")
}
