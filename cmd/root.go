// Package cmd implements the command-line interface for simud.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/icon"
	"github.com/simud-cli/simud/key"
	"github.com/simud-cli/simud/log"
	"github.com/simud-cli/simud/provider"
	"github.com/simud-cli/simud/source"
	"github.com/simud-cli/simud/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Run = rootRun

	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember resolved stream URLs in the history file")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("origin", "", "Origin of the streaming site, e.g. https://streamingunity.to")
	lo.Must0(viper.BindPFlag(key.OriginURL, rootCmd.PersistentFlags().Lookup("origin")))

	rootCmd.PersistentFlags().StringP("provider", "P", provider.Default().ID, "Site provider to scrape")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string {
			return p.ID
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// rootCmd resolves the configured titles when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   constant.Simud,
	Short: "Resolve streaming URLs for a list of titles into an M3U playlist",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Resolve streaming URLs for a list of titles into an M3U playlist"),
}

// rootRun is assigned in init to break the rootCmd -> runCmd -> createSource -> rootCmd initialization cycle.
func rootRun(cmd *cobra.Command, args []string) {
	if cmd.Flags().Changed("version") {
		versionCmd.Run(versionCmd, args)
		return
	}

	runCmd.Run(runCmd, nil)
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createSource builds the source of the provider named by --provider.
func createSource() (source.Source, error) {
	name := lo.Must(rootCmd.PersistentFlags().GetString("provider"))

	p, ok := provider.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}

	return p.CreateSource()
}

func handleErr(err error) {
	if err != nil {
		log.Component("cli").Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
