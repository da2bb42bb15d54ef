package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/simud-cli/simud/color"
	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/key"
	"github.com/simud-cli/simud/style"
	"github.com/simud-cli/simud/util"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored, terminal-wrapped representation of the field.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Simud + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// Choices returns the accepted values of an enumerated field, nil otherwise.
func (f *Field) Choices() []string {
	return Choices[f.Key]
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Section     string   `json:"section"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Choices     []string `json:"choices,omitempty"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
	}{
		Key:         f.Key,
		Section:     Section(f.Key),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Choices:     f.Choices(),
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.OriginURL, constant.Origin, "Origin of the streaming site, scheme and host only")
	register(key.OriginLocale, "it", "Locale path segment inserted before titles and iframe paths.\nLeave empty for sites without localized routes")
	register(key.OriginLanding, "/it", "Landing page fetched to bootstrap the session cookies and Inertia version.\nSome mirrors only serve it under /archive")
	register(key.HTTPClient, "tls", "HTTP client variant.\nAvailable options are: plain, tls (Chrome TLS fingerprint)")
	register(key.HTTPTimeout, 10, "Per-request deadline in seconds")
	register(key.HTTPDelay, 1000, "Delay in milliseconds before every search, detail and embed request")
	register(key.HTTPUserAgent, constant.UserAgent, "User-Agent header sent with every request.\nThe aliases desktop and mobile select the built-in browser strings")
	register(key.BootstrapAttempts, 3, "Session bootstrap attempts before giving up")
	register(key.BootstrapBackoff, 1000, "Base backoff in milliseconds between bootstrap attempts, doubled after each failure")
	register(key.SearchPick, "first", "Which search result to resolve.\nAvailable options are: first, last, exact, closest, index:n")
	register(key.SearchCache, false, "Cache search results on disk")
	register(key.SearchCacheTTL, 24, "Lifetime of cached search results in hours")
	register(key.ExtractParser, "regex", "Player script decoder.\nAvailable options are: regex, js")
	register(key.PlaylistOutput, constant.Playlist, "Path of the generated M3U playlist")
	register(key.PlaylistTitles, constant.Titles, "Titles resolved when none are passed on the command line")
	register(key.HistorySave, true, "Remember resolved stream URLs")
	register(key.LogsWrite, false, "Write logs to a file instead of stderr")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
}

// wrapWidth is the description width used by Pretty, bounded by the terminal size.
func wrapWidth() int {
	width, _, err := util.TerminalSize()
	if err != nil || width <= 0 {
		return 80
	}
	return util.Min(width, 100)
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"wrap":     func(s string) string { return wordwrap.String(s, wrapWidth()) },
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     func(choices []string) string { return strings.Join(choices, ", ") },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint (wrap .Description) }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ with .Choices }}
{{ blue "Options:" }} {{ join . }}{{ end }}`))
