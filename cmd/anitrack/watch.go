package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kerbaras/anitrack/pkg/app/components"
	"github.com/kerbaras/anitrack/pkg/data"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [id or title] [episode]",
	Short: "Update which episodes you have watched",
	Long: `Toggle a single episode, or update progress in bulk:

  anitrack watch "Frieren" 3          toggle episode 3
  anitrack watch "Frieren" --up-to 12 mark episodes 1-12 as watched
  anitrack watch "Frieren" --all      mark every episode
  anitrack watch "Frieren" --clear    clear all progress

An --up-to value that is not a positive number leaves progress unchanged.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		upTo, _ := flags.GetString("up-to")
		all, _ := flags.GetBool("all")
		clearAll, _ := flags.GetBool("clear")

		actions := 0
		for _, set := range []bool{len(args) == 2, flags.Changed("up-to"), all, clearAll} {
			if set {
				actions++
			}
		}
		if actions != 1 {
			return errors.New("give exactly one of: an episode number, --up-to, --all or --clear")
		}

		controller, err := openWatchlist(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		anime, err := resolveAnime(controller, args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var updated *data.Anime
		switch {
		case len(args) == 2:
			ep, err := strconv.Atoi(args[1])
			if err != nil || ep < 1 || ep > anime.TotalEpisodes {
				return fmt.Errorf("episode must be a number between 1 and %d", anime.TotalEpisodes)
			}
			updated, err = controller.ToggleEpisode(ctx, anime.ID, ep)
			if err != nil {
				return err
			}
		case flags.Changed("up-to"):
			if updated, _, err = controller.MarkUpTo(ctx, anime.ID, upTo); err != nil {
				return err
			}
		case all:
			if updated, err = controller.MarkAll(ctx, anime.ID); err != nil {
				return err
			}
		case clearAll:
			if updated, err = controller.ClearAll(ctx, anime.ID); err != nil {
				return err
			}
		}

		progress := components.NewProgressBar(20)
		progress.Set(updated.WatchedCount(), updated.TotalEpisodes)
		fmt.Fprintf(cmd.OutOrStdout(), "📺 %s\n%s\n", updated.Title, progress.View())
		return nil
	},
}

func init() {
	watchCmd.Flags().StringP("up-to", "u", "", "mark episodes 1 through N as watched")
	watchCmd.Flags().BoolP("all", "a", false, "mark every episode as watched")
	watchCmd.Flags().Bool("clear", false, "clear all watched episodes")
}
