package history

import (
	"fmt"
	"time"

	"github.com/simud-cli/simud/source"
)

// Entry is the last stream resolved for a title.
type Entry struct {
	SourceID   string    `json:"source_id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	ResolvedAt time.Time `json:"resolved_at"`
}

func (e *Entry) encode() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.SourceID)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %s", e.Name, e.ResolvedAt.Format(time.DateTime))
}

// Stream converts the entry back into a playlist record.
func (e *Entry) Stream() *source.Stream {
	return &source.Stream{Name: e.Name, URL: e.URL}
}

func newEntry(sourceID string, s *source.Stream, at time.Time) *Entry {
	return &Entry{
		SourceID:   sourceID,
		Name:       s.Name,
		URL:        s.URL,
		ResolvedAt: at,
	}
}
