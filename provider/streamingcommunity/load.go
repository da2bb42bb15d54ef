package streamingcommunity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/simud-cli/simud/source"
	"github.com/sirupsen/logrus"
)

type titlePage struct {
	Props struct {
		Title struct {
			ID      int         `json:"id"`
			Type    source.Kind `json:"type"`
			Seasons []season    `json:"seasons"`
		} `json:"title"`
		LoadedSeason struct {
			Episodes []episode `json:"episodes"`
		} `json:"loadedSeason"`
	} `json:"props"`
}

type season struct {
	ID     int `json:"id"`
	Number int `json:"number"`
}

type episode struct {
	ID int `json:"id"`
}

// Load fetches the title page and returns the URL of its embed frame. Series resolve to
// the first episode of the loaded season; a series without seasons or episodes is None.
func (c *Client) Load(ctx context.Context, title *source.Title) (mo.Option[string], error) {
	log := c.log.WithFields(logrus.Fields{
		"title": title.Name,
		"id":    title.ID,
	})

	if err := c.wait(ctx); err != nil {
		return mo.None[string](), err
	}

	body, _, err := c.get(ctx, c.titleURL(title), c.headers())
	if err != nil {
		return mo.None[string](), fmt.Errorf("load %s: %w", title, err)
	}

	var page titlePage
	if err := json.Unmarshal(body, &page); err != nil {
		return mo.None[string](), fmt.Errorf("%w: title page %s: %w", ErrParse, title, err)
	}

	kind := page.Props.Title.Type
	if kind == "" {
		kind = title.Type
	}

	id := page.Props.Title.ID
	if id == 0 {
		id = title.ID
	}

	frame := fmt.Sprintf("%s/iframe/%d", c.localized(), id)

	if kind != source.KindSeries {
		return mo.Some(frame + "?canPlayFHD=1"), nil
	}

	if len(page.Props.Title.Seasons) == 0 {
		log.Warn("series has no seasons")
		return mo.None[string](), nil
	}

	episodes := page.Props.LoadedSeason.Episodes
	if len(episodes) == 0 || episodes[0].ID == 0 {
		log.Warn("series has no episodes in the loaded season")
		return mo.None[string](), nil
	}

	return mo.Some(fmt.Sprintf("%s?episode_id=%d&canPlayFHD=1", frame, episodes[0].ID)), nil
}

// titleURL builds the detail page URL from the id and slug, pinned to the origin host, with the
// locale inserted.
func (c *Client) titleURL(title *source.Title) string {
	raw := c.ActualURL(fmt.Sprintf("%s/titles/%d-%s", c.base, title.ID, title.Slug))

	if c.opts.Locale == "" {
		return raw
	}

	return strings.Replace(raw, c.base+"/titles/", c.localized()+"/titles/", 1)
}
