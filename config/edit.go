package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/where"
	"github.com/spf13/viper"
)

// ErrUnknownKey is returned for keys missing from Default.
var ErrUnknownKey = errors.New("unknown key")

// sectionOrder lists sections in the order the run pipeline consults them.
var sectionOrder = []string{"origin", "http", "bootstrap", "search", "extract", "playlist", "history", "logs", "cli", "icons"}

// Section is the part of the key before the first dot.
func Section(k string) string {
	section, _, _ := strings.Cut(k, ".")
	return section
}

// Sections returns the registered fields grouped by section, sections in pipeline order
// and fields sorted by key.
func Sections() map[string][]Field {
	grouped := lo.GroupBy(lo.Values(Default), func(f Field) string {
		return Section(f.Key)
	})

	for _, fields := range grouped {
		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})
	}

	return grouped
}

// SectionNames returns the sections of Sections in display order.
func SectionNames() []string {
	return lo.Filter(sectionOrder, func(s string, _ int) bool {
		return lo.ContainsBy(lo.Keys(Default), func(k string) bool { return Section(k) == s })
	})
}

// Lookup returns the field registered under k. Unknown keys produce an error naming the
// closest registered key.
func Lookup(k string) (Field, error) {
	if field, ok := Default[k]; ok {
		return field, nil
	}

	return Field{}, fmt.Errorf("%w %s, did you mean %s?", ErrUnknownKey, k, Suggest(k))
}

// Suggest returns the registered key closest to k.
func Suggest(k string) string {
	keys := lo.Keys(Default)

	candidates := fuzzy.FindNormalizedFold(k, keys)
	if len(candidates) == 0 {
		candidates = keys
	}

	return lo.MinBy(candidates, func(a, b string) bool {
		da, db := levenshtein.Distance(k, a), levenshtein.Distance(k, b)
		if da == db {
			return a < b
		}
		return da < db
	})
}

// Parse converts command-line values to the type of the field's default and validates
// the result. Only list fields take more than one value.
func Parse(k string, raw []string) (any, error) {
	field, err := Lookup(k)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%s needs a value", k)
	}

	var value any
	switch field.Value.(type) {
	case []string:
		value = raw
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", k, raw[0])
		}
		value = n
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", k, raw[0])
		}
		value = b
	default:
		value = raw[0]
	}

	if _, isList := field.Value.([]string); !isList && len(raw) > 1 {
		return nil, fmt.Errorf("%s takes a single value", k)
	}

	if err := Validate(k, value); err != nil {
		return nil, err
	}

	return value, nil
}

// Path is the location of the toml configuration file.
func Path() string {
	return filepath.Join(where.Config(), constant.Simud+".toml")
}

// Save writes the current settings to Path, creating the file when missing.
func Save() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfigAs(Path())
	}
	return err
}
