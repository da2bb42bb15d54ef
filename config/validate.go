package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/key"
)

// Choices lists the accepted values of enumerated string fields.
var Choices = map[string][]string{
	key.HTTPClient:    {"plain", "tls"},
	key.ExtractParser: {"regex", "js"},
	key.SearchPick:    {"first", "last", "exact", "closest", "index:"},
	key.LogsLevel:     {"panic", "fatal", "error", "warn", "info", "debug", "trace"},
	key.IconsVariant:  {"emoji", "kaomoji", "plain", "squares", "nerd"},
}

// Validate reports whether value is acceptable for the field. Choices ending with a colon
// accept any value with that prefix.
func Validate(k string, value any) error {
	if k == key.OriginURL {
		u, err := url.Parse(fmt.Sprint(value))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%s must be an absolute http(s) URL", k)
		}
		return nil
	}

	choices, ok := Choices[k]
	if !ok {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s expects a string", k)
	}

	if lo.ContainsBy(choices, func(c string) bool {
		if strings.HasSuffix(c, ":") {
			return strings.HasPrefix(s, c)
		}
		return s == c
	}) {
		return nil
	}

	return fmt.Errorf("invalid value %q for %s, available options are: %s", s, k, strings.Join(choices, ", "))
}
