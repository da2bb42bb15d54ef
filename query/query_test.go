package query

import (
	"testing"

	"github.com/simud-cli/simud/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered titles", t, func() {
		So(Remember("Black Panther", 1), ShouldBeNil)
		So(Remember("Thor: Ragnarok", 10), ShouldBeNil)

		Convey("Suggestions should be sorted by rank", func() {
			s := SuggestMany("r")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "Thor: Ragnarok")
		})

		Convey("Suggestions should keep the original spelling", func() {
			So(Suggest("thor").MustGet(), ShouldEqual, "Thor: Ragnarok")
		})

		Convey("Remembering again should raise the rank", func() {
			So(Remember("  black panther ", 100), ShouldBeNil)
			So(Suggest("a").MustGet(), ShouldEqual, "Black Panther")
		})

		Convey("Unknown input should have no suggestion", func() {
			So(Suggest("wakanda").IsAbsent(), ShouldBeTrue)
		})

		Convey("Blank titles should be ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(SuggestMany(""), ShouldNotContain, "")
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  THOR  "), ShouldEqual, "thor")
		})
	})
}
