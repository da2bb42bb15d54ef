// Package streamingcommunity resolves stream URLs from a StreamingCommunity-style site:
// an Inertia.js catalogue whose titles embed a VixCloud player.
package streamingcommunity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/internal/cache"
	"github.com/simud-cli/simud/internal/jsobject"
	"github.com/simud-cli/simud/source"
	"github.com/sirupsen/logrus"
)

// Name is the provider identifier.
const Name = "streamingcommunity"

// Player script decoders.
const (
	ParserRegex = "regex"
	ParserJS    = "js"
)

// Failure classes, shared with every other source.
var (
	ErrBootstrap = source.ErrBootstrap
	ErrTransport = source.ErrTransport
	ErrParse     = source.ErrParse
)

// Options configures a Client.
type Options struct {
	// Origin is the site origin, e.g. https://streamingunity.to.
	Origin string
	// Locale is the path segment inserted before title and iframe paths. Empty disables it.
	Locale string
	// Landing is the path fetched to bootstrap the session.
	Landing   string
	UserAgent string

	HTTPClient *http.Client
	// Delay is waited before every search, detail and embed request.
	Delay time.Duration

	Attempts int
	// Backoff is the wait after the first failed bootstrap attempt; it doubles after each failure.
	Backoff time.Duration

	Parser string
	// Cache stores search results when non-nil.
	Cache *cache.Store

	Logger logrus.FieldLogger
}

// Session is the state harvested by Setup and sent with every later request.
type Session struct {
	Cookie  string
	Version string
}

// Client talks to one site. It is not safe for concurrent use.
type Client struct {
	opts    Options
	base    string
	origin  *url.URL
	session Session
	decode  func(string) (*jsobject.Descriptor, error)
	log     logrus.FieldLogger
}

// New validates the options and returns a client that still needs Setup.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.Origin, "/")
	origin, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute URL", opts.Origin)
	}

	c := &Client{opts: opts, base: base, origin: origin}

	switch opts.Parser {
	case ParserRegex, "":
		c.decode = jsobject.Decode
	case ParserJS:
		c.decode = jsobject.Evaluate
	default:
		return nil, fmt.Errorf("unknown parser %q", opts.Parser)
	}

	if c.opts.HTTPClient == nil {
		c.opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if c.opts.UserAgent == "" {
		c.opts.UserAgent = constant.UserAgent
	}
	if c.opts.Attempts < 1 {
		c.opts.Attempts = 1
	}
	if c.opts.Landing == "" {
		c.opts.Landing = "/"
	}

	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	} else {
		c.log = opts.Logger.WithField("component", Name)
	}

	return c, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return Name
}

// Session returns the current session state.
func (c *Client) Session() Session {
	return c.session
}

// headers returns the browser-like header set. The Inertia headers make the title pages
// answer with their JSON props instead of HTML.
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("User-Agent", c.opts.UserAgent)
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("X-Requested-With", "XMLHttpRequest")
	h.Set("X-Inertia", "true")

	if c.session.Cookie != "" {
		h.Set("Cookie", c.session.Cookie)
	}
	if c.session.Version != "" {
		h.Set("X-Inertia-Version", c.session.Version)
	}

	return h
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, rawURL string, header http.Header) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header = header

	c.log.WithField("url", rawURL).Debug("GET")

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("%w: read %s: %w", ErrTransport, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, fmt.Errorf("%w: GET %s: status %d", ErrTransport, rawURL, resp.StatusCode)
	}

	return body, resp, nil
}

// wait sleeps for the configured inter-request delay.
func (c *Client) wait(ctx context.Context) error {
	return sleep(ctx, c.opts.Delay)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// localized returns base with the locale segment, e.g. https://host/it.
func (c *Client) localized() string {
	if c.opts.Locale == "" {
		return c.base
	}
	return c.base + "/" + strings.Trim(c.opts.Locale, "/")
}

// ActualURL rewrites raw onto the configured origin's host when it points elsewhere.
// The catalogue keeps absolute links to whichever mirror generated them.
func (c *Client) ActualURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Host == c.origin.Host {
		return raw
	}

	actual := strings.Replace(raw, u.Host, c.origin.Host, 1)
	c.log.WithFields(logrus.Fields{"from": raw, "to": actual}).Info("rewrote url host")
	return actual
}
