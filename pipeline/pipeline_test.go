package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/simud-cli/simud/constant"
	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/history"
	"github.com/simud-cli/simud/internal/sitetest"
	"github.com/simud-cli/simud/provider/streamingcommunity"
	"github.com/simud-cli/simud/source"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func newSource(site *sitetest.Site, parser string) source.Source {
	logger, _ := test.NewNullLogger()
	return lo.Must(streamingcommunity.New(streamingcommunity.Options{
		Origin:     site.URL,
		Locale:     "it",
		Landing:    "/it",
		HTTPClient: site.Client(),
		Attempts:   3,
		Backoff:    time.Millisecond,
		Parser:     parser,
		Logger:     logger,
	}))
}

func TestRunEndToEnd(t *testing.T) {
	expected, err := os.ReadFile(filepath.Join("testdata", "expected.m3u"))
	if err != nil {
		t.Fatal(err)
	}

	for _, parser := range []string{streamingcommunity.ParserRegex, streamingcommunity.ParserJS} {
		Convey("Given the fake site and the "+parser+" parser", t, func() {
			site := sitetest.New()
			defer site.Close()

			logger, hook := test.NewNullLogger()
			So(history.Clear(), ShouldBeNil)

			report, err := Run(context.Background(), &Options{
				Source:      newSource(site, parser),
				Titles:      constant.Titles,
				Output:      "/out/Simud.m3u",
				Logger:      logger,
				SaveHistory: true,
			})

			Convey("The run should succeed", func() {
				So(err, ShouldBeNil)
				So(report.ID, ShouldNotBeEmpty)
				So(report.Output, ShouldEqual, "/out/Simud.m3u")
				So(report.Outcomes, ShouldHaveLength, len(constant.Titles))
			})

			Convey("The playlist should match the expected file byte for byte", func() {
				data, err := filesystem.API().ReadFile("/out/Simud.m3u")
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, string(expected))
			})

			Convey("The title without results should be reported as not found", func() {
				thor := report.Outcomes[3]
				So(thor.Query, ShouldEqual, "Thor: Ragnarok")
				So(thor.Status, ShouldEqual, StatusNotFound)
				So(thor.Stage, ShouldEqual, StagePick)
				So(thor.Class, ShouldEqual, ClassNotFound)
				So(report.Count(StatusResolved), ShouldEqual, 4)
			})

			Convey("The skipped title should be logged as a warning", func() {
				warned := lo.Filter(hook.AllEntries(), func(e *logrus.Entry, _ int) bool {
					return e.Level == logrus.WarnLevel
				})
				So(warned, ShouldHaveLength, 1)
				So(warned[0].Data["query"], ShouldEqual, "Thor: Ragnarok")
				So(warned[0].Data["component"], ShouldEqual, "pipeline")
			})

			Convey("Resolved streams should be recorded in history", func() {
				entries, err := history.Get()
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 4)
			})

			Convey("The session should be bootstrapped exactly once", func() {
				So(site.Landings(), ShouldEqual, 1)
			})
		})
	}
}

func TestRunSkipsFailures(t *testing.T) {
	Convey("Given a site with a broken title", t, func() {
		site := sitetest.New()
		defer site.Close()

		site.Pages[sitetest.NoWayHome] = `not json`
		delete(site.Players, sitetest.BlackPanther)

		report, err := Run(context.Background(), &Options{
			Source: newSource(site, streamingcommunity.ParserRegex),
			Titles: constant.Titles,
			Output: "/out/failures.m3u",
		})
		So(err, ShouldBeNil)

		Convey("The broken titles should be classified", func() {
			spider := report.Outcomes[1]
			So(spider.Status, ShouldEqual, StatusFailed)
			So(spider.Stage, ShouldEqual, StageLoad)
			So(spider.Class, ShouldEqual, ClassParse)

			panther := report.Outcomes[2]
			So(panther.Status, ShouldEqual, StatusFailed)
			So(panther.Stage, ShouldEqual, StageExtract)
			So(panther.Class, ShouldEqual, ClassTransport)
		})

		Convey("The other titles should still be written", func() {
			So(report.Count(StatusResolved), ShouldEqual, 2)
			So(lo.Map(report.Streams(), func(s *source.Stream, _ int) string { return s.Name }),
				ShouldResemble, []string{"Avengers: Endgame", "WandaVision"})
		})
	})
}

func TestRunBootstrapFailure(t *testing.T) {
	Convey("Given a site whose landing page never answers", t, func() {
		site := sitetest.New()
		defer site.Close()
		site.FailLanding = 100

		report, err := Run(context.Background(), &Options{
			Source: newSource(site, streamingcommunity.ParserRegex),
			Titles: constant.Titles,
			Output: "/out/never.m3u",
		})

		Convey("The run should stop with a bootstrap error", func() {
			So(errors.Is(err, source.ErrBootstrap), ShouldBeTrue)
			So(report.Outcomes, ShouldBeEmpty)
			So(site.Landings(), ShouldEqual, 3)

			exists, _ := filesystem.API().Exists("/out/never.m3u")
			So(exists, ShouldBeFalse)
		})
	})
}

type stubSource struct {
	search func(query string) ([]*source.Title, error)
	cancel context.CancelFunc
}

func (stubSource) Name() string { return "stub" }

func (stubSource) Setup(context.Context) error { return nil }

func (s stubSource) Search(_ context.Context, query string) ([]*source.Title, error) {
	return s.search(query)
}

func (s stubSource) Load(_ context.Context, title *source.Title) (mo.Option[string], error) {
	if s.cancel != nil {
		s.cancel()
		return mo.None[string](), fmt.Errorf("load %s: %w", title.Name, context.Canceled)
	}
	return mo.Some("https://stub/frame/" + title.Slug), nil
}

func (stubSource) Extract(_ context.Context, frame string) (mo.Option[string], error) {
	return mo.Some(frame + "?token=t&expires=1"), nil
}

func TestRunWithPicker(t *testing.T) {
	Convey("Given a source returning several results", t, func() {
		src := stubSource{search: func(string) ([]*source.Title, error) {
			return []*source.Title{
				{Name: "Black Panther Collection", Slug: "collection", Type: source.KindMovie},
				{Name: "Black Panther: Wakanda Forever", Slug: "wakanda-forever", Type: source.KindMovie},
				{Name: "Black Panther", Slug: "black-panther", Type: source.KindMovie},
			}, nil
		}}

		Convey("The closest picker should resolve the exact title", func() {
			picker, err := ParsePicker("closest")
			So(err, ShouldBeNil)

			report, err := Run(context.Background(), &Options{Source: src, Titles: []string{"black panther"}, Picker: picker})
			So(err, ShouldBeNil)
			So(report.Outcomes[0].Title.Slug, ShouldEqual, "black-panther")
			So(report.Outcomes[0].URL, ShouldEqual, "https://stub/frame/black-panther?token=t&expires=1")
			So(report.Output, ShouldBeEmpty)
		})

		Convey("The default picker should resolve the first result", func() {
			report, err := Run(context.Background(), &Options{Source: src, Titles: []string{"black panther"}})
			So(err, ShouldBeNil)
			So(report.Outcomes[0].Title.Slug, ShouldEqual, "collection")
		})
	})
}

func TestRunCancellation(t *testing.T) {
	Convey("Given a run cancelled while loading the first title", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		src := stubSource{
			search: func(q string) ([]*source.Title, error) {
				return []*source.Title{{Name: q, Slug: q, Type: source.KindMovie}}, nil
			},
			cancel: cancel,
		}

		report, err := Run(ctx, &Options{Source: src, Titles: []string{"a", "b"}, Output: "/out/cancelled.m3u"})

		Convey("The run should stop without writing the playlist", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(report.Outcomes, ShouldHaveLength, 1)
			So(report.Outcomes[0].Class, ShouldEqual, ClassCanceled)

			exists, _ := filesystem.API().Exists("/out/cancelled.m3u")
			So(exists, ShouldBeFalse)
		})
	})
}
