package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/config"
	"github.com/simud-cli/simud/style"
	"github.com/simud-cli/simud/util"
	"github.com/simud-cli/simud/where"
	"github.com/spf13/cobra"
)

// location is a file or directory simud reads or writes.
type location struct {
	name     string
	path     func() string
	internal bool
}

var locations = []location{
	{"config", config.Path, false},
	{"history", where.History, false},
	{"logs", where.Logs, false},
	{"queries", where.Queries, true},
	{"searches", where.Searches, true},
	{"cache", where.Cache, true},
}

func locationNames() []string {
	return lo.Map(locations, func(l location, _ int) string { return l.name })
}

func init() {
	rootCmd.AddCommand(whereCmd)

	whereCmd.Flags().BoolP("all", "a", false, "Include cache locations")
	whereCmd.Flags().BoolP("json", "j", false, "Print the locations as a JSON object")

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:       "where [location]",
	Short:     "Show where simud keeps its config, history, logs and caches",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: locationNames(),
	Example: `  simud where
  simud where history
  cat "$(simud where config)"`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			l, _ := lo.Find(locations, func(l location) bool { return l.name == args[0] })
			cmd.Println(l.path())
			return
		}

		shown := locations
		if !lo.Must(cmd.Flags().GetBool("all")) {
			shown = lo.Reject(locations, func(l location, _ int) bool { return l.internal })
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(shown, func(l location) (string, string) { return l.name, l.path() })
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		width := lo.Max(lo.Map(shown, func(l location, _ int) int { return len(l.name) }))
		for _, l := range shown {
			label := fmt.Sprintf("%-*s", width, util.Capitalize(l.name))
			cmd.Printf("%s  %s\n", style.Fg(color.HiPurple)(label), l.path())
		}
	},
}
