// Package history remembers the last stream URL resolved for every title.
package history

import (
	"sort"
	"time"

	"github.com/metafates/gache"
	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/source"
	"github.com/simud-cli/simud/where"
)

// cacher is the disk-backed registry of resolved streams, keyed by entry key.
var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every recorded entry keyed by entry key.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// List returns the recorded entries, most recently resolved first.
func List() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(saved))
	for _, e := range saved {
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ResolvedAt.Equal(entries[j].ResolvedAt) {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].ResolvedAt.After(entries[j].ResolvedAt)
	})

	return entries, nil
}

// Save records the resolved streams, replacing earlier URLs of the same titles.
// Streams without a URL are ignored.
func Save(sourceID string, streams ...*source.Stream) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, s := range streams {
		if !s.Playable() {
			continue
		}

		entry := newEntry(sourceID, s, now)
		saved[entry.encode()] = entry
	}

	return cacher.Set(saved)
}

// Remove deletes a single entry.
func Remove(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, entry.encode())
	return cacher.Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
