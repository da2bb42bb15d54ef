package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/simud-cli/simud/source"
)

// Status is the final state of one title.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// Stage is the step a title stopped at.
type Stage string

const (
	StageSearch  Stage = "search"
	StagePick    Stage = "pick"
	StageLoad    Stage = "load"
	StageExtract Stage = "extract"
	StageDone    Stage = "done"
)

// Class groups failures by cause.
type Class string

const (
	ClassNone      Class = ""
	ClassTransport Class = "transport"
	ClassParse     Class = "parse"
	ClassNotFound  Class = "not_found"
	ClassCanceled  Class = "canceled"
	ClassUnknown   Class = "unknown"
)

// Outcome describes what happened to one requested title.
type Outcome struct {
	Query  string        `json:"query" jsonschema:"description=Title as requested"`
	Title  *source.Title `json:"title,omitempty" jsonschema:"description=Search result that was resolved"`
	Stage  Stage         `json:"stage" jsonschema:"enum=search,enum=pick,enum=load,enum=extract,enum=done"`
	Status Status        `json:"status" jsonschema:"enum=resolved,enum=not_found,enum=failed"`
	Class  Class         `json:"class,omitempty" jsonschema:"enum=transport,enum=parse,enum=not_found,enum=canceled,enum=unknown"`
	Error  string        `json:"error,omitempty"`
	URL    string        `json:"url,omitempty" jsonschema:"format=uri"`
}

// Stream returns the playlist record of a resolved outcome.
func (o *Outcome) Stream() *source.Stream {
	name := o.Query
	if o.Title != nil {
		name = o.Title.Name
	}
	return &source.Stream{Name: name, URL: o.URL}
}

// Report summarizes a run.
type Report struct {
	ID         string     `json:"id" jsonschema:"format=uuid"`
	Source     string     `json:"source"`
	Output     string     `json:"output,omitempty" jsonschema:"description=Playlist path or empty when nothing was written"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Outcomes   []*Outcome `json:"outcomes"`
}

// Streams returns the resolved records in request order.
func (r *Report) Streams() []*source.Stream {
	resolved := lo.Filter(r.Outcomes, func(o *Outcome, _ int) bool {
		return o.Status == StatusResolved
	})
	return lo.Map(resolved, func(o *Outcome, _ int) *source.Stream {
		return o.Stream()
	})
}

// Count reports how many outcomes have the given status.
func (r *Report) Count(status Status) int {
	return lo.CountBy(r.Outcomes, func(o *Outcome) bool {
		return o.Status == status
	})
}

// WriteJSON encodes the report.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ClassCanceled
	case errors.Is(err, source.ErrTransport):
		return ClassTransport
	case errors.Is(err, source.ErrParse):
		return ClassParse
	default:
		return ClassUnknown
	}
}
