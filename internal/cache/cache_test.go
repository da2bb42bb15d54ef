package cache

import (
	"testing"
	"time"

	"github.com/simud-cli/simud/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

type entry struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

func TestStore(t *testing.T) {
	Convey("Store", t, func() {
		filesystem.SetMemMapFs()
		store := New("/cache/search", time.Hour)

		Convey("GenerateKey should ignore case and surrounding space", func() {
			So(GenerateKey(" Thor Ragnarok ", "o"), ShouldEqual, GenerateKey("thor ragnarok", "o"))
			So(GenerateKey("thor", "a"), ShouldNotEqual, GenerateKey("thor", "b"))
		})

		Convey("GenerateKey should keep distinct queries apart", func() {
			So(GenerateKey("Black Panther", "o"), ShouldNotEqual, GenerateKey("BlackPanther", "o"))
			So(GenerateKey("ab", "c"), ShouldNotEqual, GenerateKey("a", "bc"))
		})

		Convey("Should round-trip an entry", func() {
			key := GenerateKey("thor", "origin")
			So(store.Write(key, []entry{{Name: "Thor", ID: 7}}), ShouldBeNil)

			var got []entry
			So(store.Read(key, &got), ShouldBeTrue)
			So(got, ShouldResemble, []entry{{Name: "Thor", ID: 7}})
		})

		Convey("Should miss unknown keys", func() {
			var got []entry
			So(store.Read("missing", &got), ShouldBeFalse)
		})

		Convey("Should treat expired entries as missing and collect them", func() {
			key := GenerateKey("loki", "origin")
			So(store.Write(key, entry{Name: "Loki"}), ShouldBeNil)

			old := time.Now().Add(-2 * time.Hour)
			So(filesystem.API().Chtimes("/cache/search/"+key, old, old), ShouldBeNil)

			var got entry
			So(store.Read(key, &got), ShouldBeFalse)
			So(store.CollectGarbage(), ShouldEqual, 1)
		})
	})
}
