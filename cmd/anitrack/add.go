package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an anime to your watchlist",
	Long:  "Add an anime with its episode count and an optional cover image URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, _ := cmd.Flags().GetString("image")
		episodes, _ := cmd.Flags().GetInt("episodes")

		in := data.AnimeInput{
			Title:         strings.TrimSpace(strings.Join(args, " ")),
			ImageURL:      strings.TrimSpace(image),
			TotalEpisodes: episodes,
		}
		if err := in.Validate(); err != nil {
			return err
		}

		controller, err := openWatchlist(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		anime, err := controller.Add(cmd.Context(), in)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Added '%s' (%d episodes, ID: %s)\n", anime.Title, anime.TotalEpisodes, anime.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("image", "i", "", "cover image URL")
	addCmd.Flags().IntP("episodes", "e", 12, "total number of episodes")
}
