package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/simud-cli/simud/source"
	"github.com/simud-cli/simud/util"
	"github.com/sirupsen/logrus"
)

// Picker chooses the search result to resolve for a query. Nil means nothing fits.
type Picker func(query string, titles []*source.Title) *source.Title

// Options configures a Run.
type Options struct {
	Source source.Source
	Titles []string
	// Picker defaults to the first result.
	Picker Picker
	// Output is the playlist path. Empty skips writing the file.
	Output string
	Logger logrus.FieldLogger
	// SaveHistory records resolved streams in the history store.
	SaveHistory bool
}

// Pickers lists the names accepted by ParsePicker.
func Pickers() []string {
	return []string{"first", "last", "closest", "exact", "index:<n>"}
}

// ParsePicker builds a picker from its name. index takes a zero-based position, e.g. index:2.
func ParsePicker(description string) (Picker, error) {
	kind, value, _ := strings.Cut(description, ":")

	switch kind {
	case "first", "":
		return func(_ string, titles []*source.Title) *source.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[0]
		}, nil
	case "last":
		return func(_ string, titles []*source.Title) *source.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[len(titles)-1]
		}, nil
	case "exact":
		return func(query string, titles []*source.Title) *source.Title {
			found, _ := lo.Find(titles, func(t *source.Title) bool {
				return strings.EqualFold(t.Name, query)
			})
			return found
		}, nil
	case "closest":
		return closest, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(_ string, titles []*source.Title) *source.Title {
			if len(titles) == 0 {
				return nil
			}
			return titles[util.Min(idx, uint64(len(titles)-1))]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// closest narrows the results to those fuzzy-matching the query, falling back to all of
// them, and returns the one with the smallest edit distance. Ties keep response order.
func closest(query string, titles []*source.Title) *source.Title {
	if len(titles) == 0 {
		return nil
	}

	name := normalizedName(query)
	candidates := lo.Filter(titles, func(t *source.Title, _ int) bool {
		return fuzzy.MatchNormalizedFold(name, t.Name)
	})
	if len(candidates) == 0 {
		candidates = titles
	}

	return lo.MinBy(candidates, func(a, b *source.Title) bool {
		return levenshtein.Distance(name, normalizedName(a.Name)) <
			levenshtein.Distance(name, normalizedName(b.Name))
	})
}

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
