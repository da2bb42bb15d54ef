package util

import (
	"testing"

	"github.com/simud-cli/simud/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "stream", "streams"), ShouldEqual, "1 stream")
		So(Quantify(0, "stream", "streams"), ShouldEqual, "0 streams")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMin(t *testing.T) {
	Convey("Min", t, func() {
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Min[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("Should remove directories recursively", func() {
			So(fs.WriteFile("/cache/search/a", []byte("x"), 0o644), ShouldBeNil)
			So(Delete("/cache"), ShouldBeNil)
			exists, _ := fs.Exists("/cache/search/a")
			So(exists, ShouldBeFalse)
		})

		Convey("Should report missing paths", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
