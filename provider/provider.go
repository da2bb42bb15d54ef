// Package provider manages the built-in scraping providers.
package provider

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/internal/cache"
	"github.com/simud-cli/simud/key"
	"github.com/simud-cli/simud/log"
	"github.com/simud-cli/simud/network"
	"github.com/simud-cli/simud/provider/streamingcommunity"
	"github.com/simud-cli/simud/source"
	"github.com/simud-cli/simud/where"
	"github.com/spf13/viper"
)

// Provider represents a source provider.
type Provider struct {
	ID           string
	Name         string
	CreateSource func() (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   streamingcommunity.Name,
			Name: "StreamingCommunity",
			CreateSource: func() (source.Source, error) {
				opts, err := Options()
				if err != nil {
					return nil, err
				}
				return streamingcommunity.New(opts)
			},
		},
	}
}

// Default returns the provider used when none is named.
func Default() *Provider {
	return Builtins()[0]
}

// Get finds a provider by id or name.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return p.ID == name || p.Name == name
	})
}

// Options builds the streamingcommunity client options from configuration.
func Options() (streamingcommunity.Options, error) {
	client, err := network.New(
		viper.GetString(key.HTTPClient),
		time.Duration(viper.GetInt(key.HTTPTimeout))*time.Second,
	)
	if err != nil {
		return streamingcommunity.Options{}, fmt.Errorf("http client: %w", err)
	}

	opts := streamingcommunity.Options{
		Origin:     viper.GetString(key.OriginURL),
		Locale:     viper.GetString(key.OriginLocale),
		Landing:    viper.GetString(key.OriginLanding),
		UserAgent:  userAgent(viper.GetString(key.HTTPUserAgent)),
		HTTPClient: client,
		Delay:      time.Duration(viper.GetInt(key.HTTPDelay)) * time.Millisecond,
		Attempts:   viper.GetInt(key.BootstrapAttempts),
		Backoff:    time.Duration(viper.GetInt(key.BootstrapBackoff)) * time.Millisecond,
		Parser:     viper.GetString(key.ExtractParser),
		Logger:     log.L(),
	}

	opts.Cache = SearchCache()

	return opts, nil
}

// userAgent expands the desktop and mobile aliases; any other value is sent verbatim.
func userAgent(value string) string {
	switch value {
	case "desktop":
		return constant.UserAgent
	case "mobile":
		return constant.MobileUserAgent
	default:
		return value
	}
}

// SearchCache returns the configured search result cache, or nil when caching is off.
func SearchCache() *cache.Store {
	if !viper.GetBool(key.SearchCache) {
		return nil
	}
	return cache.New(where.Searches(), time.Duration(viper.GetInt(key.SearchCacheTTL))*time.Hour)
}
