// Package icon renders status symbols in the variant chosen by the icons.variant setting.
package icon

import (
	"github.com/simud-cli/simud/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns all supported icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Search
	Stream
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "▣"},
	Fail:     {emoji: "❌", nerd: "", plain: "✗", kaomoji: "(×_×)", squares: "▨"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "◪"},
	Progress: {emoji: "⏳", nerd: "", plain: "…", kaomoji: "(◔_◔)", squares: "◫"},
	Search:   {emoji: "🔍", nerd: "", plain: "?", kaomoji: "(⊙_⊙)", squares: "◧"},
	Stream:   {emoji: "🎬", nerd: "", plain: ">", kaomoji: "(☞ﾟ∀ﾟ)☞", squares: "▶"},
}

// Get returns the rendered string for an icon under the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
