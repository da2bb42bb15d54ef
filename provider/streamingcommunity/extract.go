package streamingcommunity

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"github.com/simud-cli/simud/source"
)

const playerMarker = "masterPlaylist"

// Extract follows the embed frame to the player page and returns the signed playlist URL.
// A frame without an iframe, or a player page without the playlist script, is None.
func (c *Client) Extract(ctx context.Context, frameURL string) (mo.Option[string], error) {
	log := c.log.WithField("frame", frameURL)

	if err := c.wait(ctx); err != nil {
		return mo.None[string](), err
	}

	body, _, err := c.get(ctx, frameURL, c.headers())
	if err != nil {
		return mo.None[string](), fmt.Errorf("embed frame: %w", err)
	}

	src, err := iframeSource(body, frameURL)
	if err != nil {
		return mo.None[string](), err
	}
	if src == "" {
		log.Warn("embed frame has no iframe")
		return mo.None[string](), nil
	}

	if err := c.wait(ctx); err != nil {
		return mo.None[string](), err
	}

	header := c.headers()
	header.Set("Referer", c.base)
	header.Set("Sec-Fetch-Dest", "iframe")
	header.Set("Sec-Fetch-Mode", "navigate")
	header.Set("Sec-Fetch-Site", "cross-site")

	body, _, err = c.get(ctx, src, header)
	if err != nil {
		return mo.None[string](), fmt.Errorf("player page: %w", err)
	}

	script, err := playerScript(body)
	if err != nil {
		return mo.None[string](), err
	}
	if script == "" {
		log.WithField("player", src).Warn("player page has no playlist script")
		return mo.None[string](), nil
	}

	descriptor, err := c.decode(script)
	if err != nil {
		return mo.None[string](), fmt.Errorf("%w: player script: %w", ErrParse, err)
	}

	link, err := descriptor.PlaylistURL()
	if err != nil {
		return mo.None[string](), fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := source.ValidateURL(link); err != nil {
		return mo.None[string](), fmt.Errorf("%w: playlist url: %w", ErrParse, err)
	}

	log.WithField("url", link).Info("playlist url extracted")
	return mo.Some(link), nil
}

// iframeSource returns the first iframe's src resolved against base, or "" when there is none.
func iframeSource(page []byte, base string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: embed frame: %w", ErrParse, err)
	}

	src, ok := doc.Find("iframe").First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return "", nil
	}

	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: iframe src %q: %w", ErrParse, src, err)
	}

	if ref.IsAbs() {
		return src, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: frame url %q: %w", ErrParse, base, err)
	}

	return baseURL.ResolveReference(ref).String(), nil
}

// playerScript returns the text of the first script mentioning the master playlist.
func playerScript(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: player page: %w", ErrParse, err)
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := s.Text(); strings.Contains(text, playerMarker) {
			script = text
			return false
		}
		return true
	})

	return script, nil
}
