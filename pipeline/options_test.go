package pipeline

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/simud-cli/simud/source"
	. "github.com/smartystreets/goconvey/convey"
)

func titles(names ...string) []*source.Title {
	result := make([]*source.Title, len(names))
	for i, name := range names {
		result[i] = &source.Title{Name: name, ID: i + 1, Type: source.KindMovie}
	}
	return result
}

func TestParsePicker(t *testing.T) {
	Convey("Given search results", t, func() {
		results := titles("Thor", "Thor: Ragnarok", "Thor: Love and Thunder")

		pick := func(description, query string) *source.Title {
			picker, err := ParsePicker(description)
			So(err, ShouldBeNil)
			return picker(query, results)
		}

		Convey("first and last should pick by position", func() {
			So(pick("first", "x").ID, ShouldEqual, 1)
			So(pick("last", "x").ID, ShouldEqual, 3)
		})

		Convey("exact should ignore case", func() {
			So(pick("exact", "thor: ragnarok").ID, ShouldEqual, 2)
			So(pick("exact", "Loki"), ShouldBeNil)
		})

		Convey("index should clamp to the last result", func() {
			So(pick("index:1", "x").ID, ShouldEqual, 2)
			So(pick("index:9", "x").ID, ShouldEqual, 3)
		})

		Convey("closest should prefer the smallest edit distance", func() {
			So(pick("closest", "Thor Ragnarok").ID, ShouldEqual, 2)
			So(pick("closest", "love and thunder").ID, ShouldEqual, 3)
		})

		Convey("closest should fall back to every result when nothing matches", func() {
			So(pick("closest", "Odin").ID, ShouldEqual, 1)
		})

		Convey("Every picker should return nil on empty results", func() {
			for _, description := range []string{"first", "last", "exact", "closest", "index:0"} {
				picker, err := ParsePicker(description)
				So(err, ShouldBeNil)
				So(picker("Thor", nil), ShouldBeNil)
			}
		})

		Convey("Unknown pickers and bad indexes should be rejected", func() {
			_, err := ParsePicker("random")
			So(err, ShouldNotBeNil)

			_, err = ParsePicker("index:x")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestReport(t *testing.T) {
	Convey("Given a report", t, func() {
		report := &Report{
			Source: "stub",
			Outcomes: []*Outcome{
				{Query: "a", Title: &source.Title{Name: "A"}, Stage: StageDone, Status: StatusResolved, URL: "https://x/a"},
				{Query: "b", Stage: StagePick, Status: StatusNotFound, Class: ClassNotFound},
			},
		}

		Convey("Streams should use the matched title name", func() {
			So(report.Streams(), ShouldResemble, []*source.Stream{{Name: "A", URL: "https://x/a"}})
		})

		Convey("WriteJSON should produce a decodable report", func() {
			var buf bytes.Buffer
			So(report.WriteJSON(&buf), ShouldBeNil)

			var decoded Report
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded.Outcomes, ShouldHaveLength, 2)
			So(decoded.Outcomes[1].Class, ShouldEqual, ClassNotFound)
		})
	})
}
