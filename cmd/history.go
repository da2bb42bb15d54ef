package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/history"
	"github.com/simud-cli/simud/icon"
	"github.com/simud-cli/simud/playlist"
	"github.com/simud-cli/simud/source"
	"github.com/simud-cli/simud/style"
	"github.com/simud-cli/simud/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Format the history as JSON")
	historyCmd.Flags().StringP("export", "e", "", "Write the remembered streams to an M3U playlist at this path")
	historyCmd.MarkFlagsMutuallyExclusive("json", "export")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd shows the last URL resolved for every title.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the stream URLs resolved by previous runs",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := history.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if path := lo.Must(cmd.Flags().GetString("export")); path != "" {
			streams := lo.Map(entries, func(e *history.Entry, _ int) *source.Stream {
				return e.Stream()
			})
			handleErr(playlist.Save(path, streams))
			cmd.Printf(
				"%s %s written to %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				util.Quantify(playlist.Count(streams), "stream", "streams"),
				style.Fg(color.Purple)(path),
			)
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("history is empty"))
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s\n", style.Bold(e.Name), style.Faint(e.ResolvedAt.Format("2006-01-02 15:04")))
			cmd.Println(e.URL)
		}
	},
}
