package streamingcommunity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/internal/cache"
	"github.com/simud-cli/simud/source"
	"github.com/sirupsen/logrus"
)

type searchResponse struct {
	Data []*source.Title `json:"data"`
}

// Search queries the catalogue and returns the movie and series entries in response order.
func (c *Client) Search(ctx context.Context, query string) ([]*source.Title, error) {
	log := c.log.WithField("query", query)

	var key string
	if c.opts.Cache != nil {
		key = cache.GenerateKey(query, c.origin.Host)

		var cached []*source.Title
		if c.opts.Cache.Read(key, &cached) {
			log.Debug("search cache hit")
			return cached, nil
		}
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.base + "/api/search?q=" + url.QueryEscape(query)
	body, _, err := c.get(ctx, endpoint, c.headers())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	entries, err := decodeSearch(body)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	titles := lo.Filter(entries, func(t *source.Title, _ int) bool {
		return t != nil && t.Type.Allowed()
	})

	log.WithFields(logrus.Fields{
		"entries": len(entries),
		"kept":    len(titles),
	}).Info("search finished")

	if c.opts.Cache != nil {
		if err := c.opts.Cache.Write(key, titles); err != nil {
			log.WithError(err).Warn("could not cache search results")
		}
	}

	return titles, nil
}

// decodeSearch accepts both the {"data": [...]} envelope and a bare array.
func decodeSearch(body []byte) ([]*source.Title, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var titles []*source.Title
		if err := json.Unmarshal(trimmed, &titles); err != nil {
			return nil, fmt.Errorf("%w: search response: %w", ErrParse, err)
		}
		return titles, nil
	}

	var resp searchResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("%w: search response: %w", ErrParse, err)
	}

	return resp.Data, nil
}
