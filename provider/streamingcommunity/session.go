package streamingcommunity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// Setup fetches the landing page and stores its cookies and Inertia version. Failed
// attempts are retried after Backoff, 2×Backoff, 4×Backoff... until Attempts is spent;
// the final error wraps ErrBootstrap.
func (c *Client) Setup(ctx context.Context) error {
	var lastErr error

	for attempt := 0; attempt < c.opts.Attempts; attempt++ {
		c.log.WithField("attempt", attempt+1).Info("bootstrapping session")

		session, err := c.bootstrap(ctx)
		if err == nil {
			c.session = session
			c.log.WithField("version", session.Version).Info("session ready")
			return nil
		}

		lastErr = err
		c.log.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"of":      c.opts.Attempts,
		}).WithError(err).Error("session bootstrap attempt failed")

		if ctx.Err() != nil {
			break
		}

		if attempt < c.opts.Attempts-1 {
			if err := sleep(ctx, c.opts.Backoff*time.Duration(1<<attempt)); err != nil {
				lastErr = err
				break
			}
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrBootstrap, c.opts.Attempts, lastErr)
}

func (c *Client) bootstrap(ctx context.Context) (Session, error) {
	// A plain navigation: an Inertia request without a version would be answered with 409.
	header := c.headers()
	header.Del("X-Inertia")
	header.Del("X-Requested-With")
	header.Del("Cookie")
	header.Del("X-Inertia-Version")

	body, resp, err := c.get(ctx, c.base+c.opts.Landing, header)
	if err != nil {
		return Session{}, err
	}

	cookies := make([]string, 0, len(resp.Cookies()))
	for _, cookie := range resp.Cookies() {
		cookies = append(cookies, cookie.Name+"="+cookie.Value)
	}

	version, err := inertiaVersion(body)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Cookie:  strings.Join(cookies, "; "),
		Version: version,
	}, nil
}

// inertiaVersion reads the version field of the #app element's data-page JSON.
func inertiaVersion(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("%w: landing page: %w", ErrParse, err)
	}

	data, ok := doc.Find("#app").First().Attr("data-page")
	if !ok || data == "" {
		return "", fmt.Errorf("%w: landing page has no #app data-page", ErrParse)
	}

	var props struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(data), &props); err != nil {
		return "", fmt.Errorf("%w: data-page: %w", ErrParse, err)
	}

	if props.Version == "" {
		return "", fmt.Errorf("%w: data-page has no version", ErrParse)
	}

	return props.Version, nil
}
