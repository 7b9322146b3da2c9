package cmd

import (
	"fmt"

	"github.com/kerbaras/anitrack/pkg/app/styles"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"suggest"},
	Short:   "Ask Gemini for an anime you might like",
	Long:    "Suggest one anime that is not on your watchlist, based on the titles you have added",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := openWatchlist(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		fmt.Fprintln(cmd.ErrOrStderr(), "✨ Thinking...")
		rec, err := controller.Recommend(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.SubtitleStyle.Render("Here's a Suggestion!"))
		fmt.Fprintln(out, styles.TitleStyle.MarginBottom(0).Render(rec.Title))
		fmt.Fprintln(out, rec.Reason)
		return nil
	},
}
