// Package source defines the domain models shared by the provider, the pipeline and the playlist writer.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/samber/mo"
)

// Failure classes every Source wraps its errors in.
var (
	// ErrBootstrap means the session could not be set up within the attempt budget.
	ErrBootstrap = errors.New("session bootstrap failed")

	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("transport failure")

	// ErrParse covers undecodable JSON, HTML and player scripts.
	ErrParse = errors.New("parse failure")
)

// Source is a streaming site the pipeline can resolve titles against.
type Source interface {
	// Name returns the provider identifier.
	Name() string

	// Setup bootstraps the session every later call depends on.
	Setup(ctx context.Context) error

	// Search returns the entries matching query whose kind is allowed.
	Search(ctx context.Context, query string) ([]*Title, error)

	// Load returns the embed-frame URL of a title, or None when the title has nothing to play.
	Load(ctx context.Context, title *Title) (mo.Option[string], error)

	// Extract follows the embed frame to the signed playlist URL, or None when the frame has no player.
	Extract(ctx context.Context, frameURL string) (mo.Option[string], error)
}

// Kind is the type tag the site attaches to every catalogue entry.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "tv"
)

// Allowed reports whether entries of this kind can be resolved to a stream.
func (k Kind) Allowed() bool {
	return k == KindMovie || k == KindSeries
}

// Title is a search result entry.
type Title struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Type Kind   `json:"type"`
}

func (t *Title) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Type)
}

// Stream is a resolved playlist record.
type Stream struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Playable reports whether the stream carries a usable URL.
func (s *Stream) Playable() bool {
	return s != nil && s.URL != ""
}

// ValidateURL checks that raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in %s", u.Scheme, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("missing host in %s", raw)
	}

	return nil
}
