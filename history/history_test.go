package history

import (
	"testing"
	"time"

	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given resolved streams", t, func() {
		So(Clear(), ShouldBeNil)

		endgame := &source.Stream{Name: "Avengers: Endgame", URL: "https://vixcloud.co/playlist/4511?b=1&token=t&expires=1"}
		missing := &source.Stream{Name: "Thor: Ragnarok"}

		Convey("When saving them", func() {
			err := Save("streamingcommunity", endgame, missing)
			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And only the playable stream should be recorded", func() {
					entries, err := Get()
					So(err, ShouldBeNil)
					So(entries, ShouldHaveLength, 1)
					So(entries["Avengers: Endgame (streamingcommunity)"].URL, ShouldEqual, endgame.URL)
				})

				Convey("And saving a newer URL should replace the old one", func() {
					newer := &source.Stream{Name: endgame.Name, URL: "https://vixcloud.co/playlist/4511?b=1&token=u&expires=2"}
					So(Save("streamingcommunity", newer), ShouldBeNil)

					entries, err := List()
					So(err, ShouldBeNil)
					So(entries, ShouldHaveLength, 1)
					So(entries[0].Stream(), ShouldResemble, newer)
				})

				Convey("And removing the entry should forget it", func() {
					entries, err := List()
					So(err, ShouldBeNil)
					So(Remove(entries[0]), ShouldBeNil)

					entries, err = List()
					So(err, ShouldBeNil)
					So(entries, ShouldBeEmpty)
				})
			})
		})
	})
}

func TestList(t *testing.T) {
	Convey("Given streams saved at different times", t, func() {
		So(Clear(), ShouldBeNil)
		So(Save("streamingcommunity", &source.Stream{Name: "Black Panther", URL: "https://a/1"}), ShouldBeNil)
		time.Sleep(time.Millisecond)
		So(Save("streamingcommunity", &source.Stream{Name: "WandaVision", URL: "https://a/2"}), ShouldBeNil)

		Convey("List should put the most recent first", func() {
			entries, err := List()
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Name, ShouldEqual, "WandaVision")
			So(entries[1].Name, ShouldEqual, "Black Panther")
		})
	})
}
