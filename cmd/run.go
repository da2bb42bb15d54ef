package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/icon"
	"github.com/simud-cli/simud/key"
	"github.com/simud-cli/simud/log"
	"github.com/simud-cli/simud/network"
	"github.com/simud-cli/simud/pipeline"
	"github.com/simud-cli/simud/provider/streamingcommunity"
	"github.com/simud-cli/simud/query"
	"github.com/simud-cli/simud/style"
	"github.com/simud-cli/simud/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("output", "o", "", "Path of the generated M3U playlist")
	lo.Must0(viper.BindPFlag(key.PlaylistOutput, runCmd.Flags().Lookup("output")))

	runCmd.Flags().StringP("client", "c", "", "HTTP client variant: "+strings.Join(network.Variants(), ", "))
	lo.Must0(viper.BindPFlag(key.HTTPClient, runCmd.Flags().Lookup("client")))
	lo.Must0(runCmd.RegisterFlagCompletionFunc("client", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return network.Variants(), cobra.ShellCompDirectiveNoFileComp
	}))

	runCmd.Flags().StringP("parser", "p", "", "Player script decoder: regex, js")
	lo.Must0(viper.BindPFlag(key.ExtractParser, runCmd.Flags().Lookup("parser")))
	lo.Must0(runCmd.RegisterFlagCompletionFunc("parser", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{streamingcommunity.ParserRegex, streamingcommunity.ParserJS}, cobra.ShellCompDirectiveNoFileComp
	}))

	runCmd.Flags().String("pick", "", "Search result selector: "+strings.Join(pipeline.Pickers(), ", "))
	lo.Must0(viper.BindPFlag(key.SearchPick, runCmd.Flags().Lookup("pick")))

	runCmd.Flags().BoolP("json", "j", false, "Print the run report as JSON")
}

// runCmd resolves titles into the playlist file.
var runCmd = &cobra.Command{
	Use:   "run [titles...]",
	Short: "Resolve titles and write the M3U playlist",
	Long: `Bootstrap a session with the streaming site, then search, load and extract every title in order.
Titles that cannot be resolved are reported and skipped. Without arguments the titles from the
playlist.titles setting are used.

Search result selectors:
  first - first result (default)
  last - last result
  exact - result whose name equals the title, ignoring case
  closest - result with the closest name
  index:[number] - result by position (starting from 0)`,
	ValidArgsFunction: completionTitles,
	Example: `  simud run
  simud run "Black Panther" WandaVision -o marvel.m3u
  simud run --client plain --parser js --json`,
	Run: func(cmd *cobra.Command, args []string) {
		titles := args
		if len(titles) == 0 {
			titles = viper.GetStringSlice(key.PlaylistTitles)
		}

		for _, title := range args {
			if err := query.Remember(title, 1); err != nil {
				log.Component("query").WithError(err).Warn("could not remember title")
			}
		}

		picker, err := pipeline.ParsePicker(viper.GetString(key.SearchPick))
		handleErr(err)

		src, err := createSource()
		handleErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		output := viper.GetString(key.PlaylistOutput)
		report, err := pipeline.Run(ctx, &pipeline.Options{
			Source:      src,
			Titles:      titles,
			Picker:      picker,
			Output:      output,
			Logger:      log.L(),
			SaveHistory: viper.GetBool(key.HistorySave),
		})

		if lo.Must(cmd.Flags().GetBool("json")) && report != nil {
			lo.Must0(report.WriteJSON(cmd.OutOrStdout()))
		} else if report != nil {
			printReport(cmd, report)
		}

		handleErr(err)
	},
}

func completionTitles(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func printReport(cmd *cobra.Command, report *pipeline.Report) {
	for _, o := range report.Outcomes {
		name := o.Query
		if o.Title != nil {
			name = o.Title.Name
		}

		line := fmt.Sprintf("%s %s", style.Status(string(o.Status)), style.Bold(name))
		switch o.Status {
		case pipeline.StatusResolved:
			line += " " + style.Faint(o.URL)
		default:
			line += " " + style.Fg(color.Yellow)(fmt.Sprintf("at %s", o.Stage))
			if o.Error != "" {
				line += " " + style.Faint(o.Error)
			}
		}
		cmd.Println(line)
	}

	resolved := report.Count(pipeline.StatusResolved)
	if report.Output == "" {
		return
	}

	cmd.Printf(
		"\n%s %s written to %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		util.Quantify(resolved, "stream", "streams"),
		style.Fg(color.Purple)(report.Output),
	)
}

func init() {
	runCmd.AddCommand(runSchemaCmd)
}

// runSchemaCmd prints the JSON schema of the run report.
var runSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the run report printed with --json",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "title", "report", "outcome":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&pipeline.Report{})))
	},
}
