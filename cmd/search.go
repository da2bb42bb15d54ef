package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/history"
	"github.com/simud-cli/simud/icon"
	"github.com/simud-cli/simud/key"
	"github.com/simud-cli/simud/query"
	"github.com/simud-cli/simud/source"
	"github.com/simud-cli/simud/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("json", "j", false, "Format the search results as JSON")
	searchCmd.Flags().BoolP("interactive", "i", false, "Choose a result and resolve its stream URL")
	searchCmd.MarkFlagsMutuallyExclusive("json", "interactive")
	searchCmd.SetOut(os.Stdout)
}

// searchCmd queries the catalogue without writing a playlist.
var searchCmd = &cobra.Command{
	Use:               "search [query]",
	Short:             "Search the catalogue for movies and series",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionTitles,
	Example:           `  simud search "Black Panther" --interactive`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		src, err := createSource()
		handleErr(err)
		handleErr(src.Setup(ctx))

		titles, err := src.Search(ctx, args[0])
		handleErr(err)

		if len(titles) > 0 {
			handleErr(query.Remember(args[0], 1))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			if titles == nil {
				titles = []*source.Title{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(titles))
			return
		}

		if len(titles) == 0 {
			cmd.Printf("%s no results for %s\n", icon.Get(icon.Warn), style.Bold(args[0]))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("interactive")) {
			for _, t := range titles {
				cmd.Printf("%s %s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%7d", t.ID)), style.Bold(t.Name), style.Faint(string(t.Type)))
			}
			return
		}

		var index int
		prompt := &survey.Select{
			Message: "Select a title",
			Options: lo.Map(titles, func(t *source.Title, _ int) string {
				return t.String()
			}),
		}
		handleErr(survey.AskOne(prompt, &index))

		chosen := titles[index]
		frame, err := src.Load(ctx, chosen)
		handleErr(err)
		if frame.IsAbsent() {
			handleErr(fmt.Errorf("%s has nothing to play", chosen.Name))
		}

		link, err := src.Extract(ctx, frame.MustGet())
		handleErr(err)
		if link.IsAbsent() {
			handleErr(errors.New("no playlist found in the player"))
		}

		stream := &source.Stream{Name: chosen.Name, URL: link.MustGet()}
		if viper.GetBool(key.HistorySave) {
			handleErr(history.Save(src.Name(), stream))
		}

		cmd.Printf("%s %s\n%s\n", style.Fg(color.Green)(icon.Get(icon.Stream)), style.Bold(stream.Name), stream.URL)
	},
}
