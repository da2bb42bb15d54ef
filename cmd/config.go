package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/config"
	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/icon"
	"github.com/simud-cli/simud/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return config.Choices[args[0]], cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func completionSections(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return config.SectionNames(), cobra.ShellCompDirectiveNoFileComp
}

func sectionHeader(name string) string {
	return style.New().Bold(true).Foreground(color.HiPurple).Render("[" + name + "]")
}

func printDone(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change simud settings",
	Long: `Settings are grouped by the stage that reads them: origin (which site), http (how to reach it),
bootstrap (session retries), search (result selection), extract (player decoding) and playlist
(what to resolve and where to write it), plus history, logs, cli and icons.

Each setting can also be given as a SIMUD_* environment variable, in a .env file or with a flag.`,
}

func init() {
	configCmd.AddCommand(configInfoCmd)

	configInfoCmd.Flags().StringSliceP("section", "s", nil, "Only show these sections")
	lo.Must0(configInfoCmd.RegisterFlagCompletionFunc("section", completionSections))
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe settings section by section, with their allowed values",
	ValidArgsFunction: completionConfigKeys,
	Example: `  simud config info
  simud config info -s http -s extract
  simud config info search.pick --json`,
	Run: func(cmd *cobra.Command, args []string) {
		sections := config.Sections()
		names := config.SectionNames()

		if filter := lo.Must(cmd.Flags().GetStringSlice("section")); len(filter) > 0 {
			for _, name := range filter {
				if _, ok := sections[name]; !ok {
					handleErr(fmt.Errorf("unknown section %s, available sections are: %s", name, strings.Join(names, ", ")))
				}
			}
			names = lo.Intersect(filter, names)
		}

		if len(args) > 0 {
			fields := lo.Map(args, func(k string, _ int) config.Field {
				field, err := config.Lookup(k)
				handleErr(err)
				return field
			})

			sections = lo.GroupBy(fields, func(f config.Field) string { return config.Section(f.Key) })
			names = lo.Filter(names, func(name string, _ int) bool {
				_, ok := sections[name]
				return ok
			})
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			selected := lo.PickByKeys(sections, names)
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(selected))
			return
		}

		for i, name := range names {
			if i > 0 {
				cmd.Println()
			}

			cmd.Println(sectionHeader(name))
			for _, field := range sections[name] {
				cmd.Println()
				cmd.Println(field.Pretty())
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print a setting, or every setting in toml layout when no key is given",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			_, err := config.Lookup(args[0])
			handleErr(err)
			cmd.Println(viper.Get(args[0]))
			return
		}

		sections := config.Sections()
		for i, name := range config.SectionNames() {
			if i > 0 {
				cmd.Println()
			}

			cmd.Println(sectionHeader(name))
			for _, field := range sections[name] {
				_, setting, _ := strings.Cut(field.Key, ".")
				cmd.Printf("%s = %s\n", style.Fg(color.Purple)(setting), style.Fg(color.Yellow)(tomlValue(viper.Get(field.Key))))
			}
		}
	},
}

// tomlValue renders a setting the way it would appear in the config file.
func tomlValue(v any) string {
	switch value := v.(type) {
	case string:
		return fmt.Sprintf("%q", value)
	case []string:
		return "[" + strings.Join(lo.Map(value, func(s string, _ int) string { return fmt.Sprintf("%q", s) }), ", ") + "]"
	default:
		return fmt.Sprint(value)
	}
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value...>",
	Short: "Change a setting and save it to the config file",
	Long: `Change a setting and save it to the config file.
Values are checked before saving: numbers and booleans must parse, enumerated settings
must use one of their options (see "simud config info") and origin.url must be an absolute URL.
List settings such as playlist.titles take every remaining argument.`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Example: `  simud config set extract.parser js
  simud config set playlist.titles "Black Panther" WandaVision`,
	Run: func(cmd *cobra.Command, args []string) {
		k := args[0]

		value, err := config.Parse(k, args[1:])
		handleErr(err)

		viper.Set(k, value)
		handleErr(config.Save())

		printDone("set %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(tomlValue(value)))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().BoolP("all", "a", false, "Restore every setting")
	configResetCmd.Flags().StringSliceP("section", "s", nil, "Restore every setting of these sections")
	lo.Must0(configResetCmd.RegisterFlagCompletionFunc("section", completionSections))
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		keys := args

		if lo.Must(cmd.Flags().GetBool("all")) {
			keys = lo.Keys(config.Default)
		}

		sections := config.Sections()
		for _, name := range lo.Must(cmd.Flags().GetStringSlice("section")) {
			fields, ok := sections[name]
			if !ok {
				handleErr(fmt.Errorf("unknown section %s", name))
			}
			keys = append(keys, lo.Map(fields, func(f config.Field, _ int) string { return f.Key })...)
		}

		if len(keys) == 0 {
			handleErr(fmt.Errorf("name the keys to reset, or use --section or --all"))
		}

		keys = lo.Uniq(keys)
		slices.Sort(keys)

		for _, k := range keys {
			field, err := config.Lookup(k)
			handleErr(err)
			viper.Set(k, field.Value)
		}

		handleErr(config.Save())
		printDone("reset %s", style.Fg(color.Yellow)(strings.Join(keys, ", ")))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing config file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.Path()

		if lo.Must(cmd.Flags().GetBool("force")) {
			exists, err := filesystem.API().Exists(path)
			handleErr(err)
			if exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfigAs(path))
		printDone("wrote config to %s", style.Fg(color.Purple)(path))
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file, falling back to defaults and environment",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.Path()))
		printDone("deleted %s", style.Fg(color.Purple)(config.Path()))
	},
}
