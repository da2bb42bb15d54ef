package playlist

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite(t *testing.T) {
	Convey("Given resolved and unresolved streams", t, func() {
		streams := []*source.Stream{
			{Name: "Avengers: Endgame", URL: "https://vixcloud.co/playlist/4511?b=1&token=t&expires=1&h=1"},
			{Name: "Thor: Ragnarok"},
			nil,
			{Name: `Spider-Man: "No Way Home"`, URL: "https://vixcloud.co/playlist/5032?token=t&expires=2"},
		}

		Convey("Write should emit one pair per playable stream", func() {
			var buf bytes.Buffer
			So(Write(&buf, streams), ShouldBeNil)
			So(buf.String(), ShouldEqual, "#EXTM3U\n"+
				"#EXTINF:-1 tvg-name=\"Avengers: Endgame\",Avengers: Endgame\n"+
				"https://vixcloud.co/playlist/4511?b=1&token=t&expires=1&h=1\n"+
				"#EXTINF:-1 tvg-name=\"Spider-Man: \"No Way Home\"\",Spider-Man: \"No Way Home\"\n"+
				"https://vixcloud.co/playlist/5032?token=t&expires=2\n")
			So(strings.Count(buf.String(), "#EXTINF"), ShouldEqual, Count(streams))
		})

		Convey("An empty list should produce only the header", func() {
			var buf bytes.Buffer
			So(Write(&buf, nil), ShouldBeNil)
			So(buf.String(), ShouldEqual, Header)
		})

		Convey("Writer errors should be returned", func() {
			So(Write(failingWriter{}, streams), ShouldNotBeNil)
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Given a stream", t, func() {
		streams := []*source.Stream{{Name: "WandaVision", URL: "https://vixcloud.co/playlist/91234?b=1&token=w&expires=3"}}

		Convey("Save should write the playlist file", func() {
			So(Save("/out/Simud.m3u", streams), ShouldBeNil)

			data, err := filesystem.API().ReadFile("/out/Simud.m3u")
			So(err, ShouldBeNil)
			So(string(data), ShouldStartWith, Header)
			So(string(data), ShouldContainSubstring, "tvg-name=\"WandaVision\",WandaVision\n")

			exists, err := filesystem.API().Exists("/out/Simud.m3u.tmp")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("Save should replace an existing playlist", func() {
			So(Save("/out/Simud.m3u", streams), ShouldBeNil)
			So(Save("/out/Simud.m3u", nil), ShouldBeNil)

			data, err := filesystem.API().ReadFile("/out/Simud.m3u")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, Header)
		})
	})
}
