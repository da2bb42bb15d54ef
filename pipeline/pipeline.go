// Package pipeline resolves a list of titles against a source and writes the playlist.
//
// Titles are processed one at a time: search, pick, load, extract. A title that fails or
// has nothing to play is logged and skipped; only a failed session bootstrap, a cancelled
// context or an unwritable playlist stop the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/simud-cli/simud/history"
	"github.com/simud-cli/simud/playlist"
	"github.com/sirupsen/logrus"
)

// Run bootstraps the source and resolves every title. The report is returned even when
// the run stops early.
func Run(ctx context.Context, options *Options) (*Report, error) {
	if options.Source == nil {
		return nil, errors.New("no source")
	}

	if options.Picker == nil {
		options.Picker, _ = ParsePicker("first")
	}

	log := options.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	report := &Report{
		ID:        uuid.New().String(),
		Source:    options.Source.Name(),
		StartedAt: time.Now(),
		Outcomes:  make([]*Outcome, 0, len(options.Titles)),
	}
	defer func() {
		report.FinishedAt = time.Now()
	}()

	log = log.WithFields(logrus.Fields{
		"component": "pipeline",
		"run":       report.ID,
	})

	if err := options.Source.Setup(ctx); err != nil {
		return report, fmt.Errorf("setup %s: %w", options.Source.Name(), err)
	}

	for _, query := range options.Titles {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome := resolve(ctx, options, log.WithField("query", query), query)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Class == ClassCanceled {
			return report, ctx.Err()
		}
	}

	streams := report.Streams()

	log.WithFields(logrus.Fields{
		"resolved":  len(streams),
		"not_found": report.Count(StatusNotFound),
		"failed":    report.Count(StatusFailed),
	}).Info("titles processed")

	if options.Output != "" {
		if err := playlist.Save(options.Output, streams); err != nil {
			return report, err
		}
		report.Output = options.Output
		log.WithField("path", options.Output).Info("playlist written")
	}

	if options.SaveHistory && len(streams) > 0 {
		if err := history.Save(options.Source.Name(), streams...); err != nil {
			log.WithError(err).Warn("could not save history")
		}
	}

	return report, nil
}

func resolve(ctx context.Context, options *Options, log logrus.FieldLogger, query string) *Outcome {
	outcome := &Outcome{Query: query, Stage: StageSearch}

	fail := func(err error) *Outcome {
		outcome.Status = StatusFailed
		outcome.Class = classify(err)
		outcome.Error = err.Error()
		log.WithFields(logrus.Fields{
			"stage": outcome.Stage,
			"class": outcome.Class,
		}).WithError(err).Error("title failed")
		return outcome
	}

	notFound := func(reason string) *Outcome {
		outcome.Status = StatusNotFound
		outcome.Class = ClassNotFound
		log.WithField("stage", outcome.Stage).Warn(reason)
		return outcome
	}

	titles, err := options.Source.Search(ctx, query)
	if err != nil {
		return fail(err)
	}

	outcome.Stage = StagePick
	title := options.Picker(query, titles)
	if title == nil {
		return notFound("no search result")
	}
	outcome.Title = title
	log = log.WithField("title", title.Name)

	outcome.Stage = StageLoad
	frame, err := options.Source.Load(ctx, title)
	if err != nil {
		return fail(err)
	}
	if frame.IsAbsent() {
		return notFound("nothing to play")
	}

	outcome.Stage = StageExtract
	link, err := options.Source.Extract(ctx, frame.MustGet())
	if err != nil {
		return fail(err)
	}
	if link.IsAbsent() {
		return notFound("no playlist in the player")
	}

	outcome.Stage = StageDone
	outcome.Status = StatusResolved
	outcome.URL = link.MustGet()
	log.WithField("url", outcome.URL).Info("title resolved")

	return outcome
}
