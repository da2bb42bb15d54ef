package config

import (
	"errors"
	"testing"

	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.PlaylistOutput), ShouldEqual, "Simud.m3u")
			So(viper.GetInt(key.BootstrapAttempts), ShouldEqual, 3)
			So(viper.GetStringSlice(key.PlaylistTitles), ShouldHaveLength, 5)
		})

		Convey("Every key should be registered exactly once", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
			So(len(EnvExposed), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("http.user_agent"), ShouldEqual, "http_user_agent")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.HTTPDelay]

		Convey("Env should carry the application prefix", func() {
			So(f.Env(), ShouldEqual, "SIMUD_HTTP_DELAY")
		})

		Convey("MarshalJSON should expose type and default", func() {
			data, err := f.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"int"`)
			So(string(data), ShouldContainSubstring, `"default":1000`)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Validate", t, func() {
		Convey("Should accept listed choices", func() {
			So(Validate(key.HTTPClient, "plain"), ShouldBeNil)
			So(Validate(key.ExtractParser, "js"), ShouldBeNil)
			So(Validate(key.SearchPick, "index:3"), ShouldBeNil)
		})

		Convey("Should reject values outside the choices", func() {
			So(Validate(key.HTTPClient, "curl"), ShouldNotBeNil)
			So(Validate(key.SearchPick, "random"), ShouldNotBeNil)
			So(Validate(key.LogsLevel, 3), ShouldNotBeNil)
		})

		Convey("Should require an absolute origin", func() {
			So(Validate(key.OriginURL, "https://streamingunity.to"), ShouldBeNil)
			So(Validate(key.OriginURL, "streamingunity.to"), ShouldNotBeNil)
		})

		Convey("Should accept anything for free-form fields", func() {
			So(Validate(key.PlaylistOutput, "out/marvel.m3u"), ShouldBeNil)
		})

		Convey("Every enumerated default should be valid", func() {
			for k := range Choices {
				So(Validate(k, Default[k].Value), ShouldBeNil)
			}
		})
	})
}

func TestSections(t *testing.T) {
	Convey("Sections", t, func() {
		Convey("Should follow the pipeline order", func() {
			So(SectionNames(), ShouldResemble, []string{
				"origin", "http", "bootstrap", "search", "extract", "playlist", "history", "logs", "cli", "icons",
			})
		})

		Convey("Should hold every field exactly once", func() {
			total := 0
			for name, fields := range Sections() {
				for _, f := range fields {
					So(Section(f.Key), ShouldEqual, name)
				}
				total += len(fields)
			}
			So(total, ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Fields should be sorted by key", func() {
			http := Sections()["http"]
			So(http[0].Key, ShouldEqual, key.HTTPClient)
			So(http[len(http)-1].Key, ShouldEqual, key.HTTPUserAgent)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Lookup", t, func() {
		Convey("Should return registered fields", func() {
			f, err := Lookup(key.ExtractParser)
			So(err, ShouldBeNil)
			So(f.Value, ShouldEqual, "regex")
			So(f.Choices(), ShouldResemble, []string{"regex", "js"})
		})

		Convey("Should suggest the closest key for typos", func() {
			_, err := Lookup("extract.parsr")
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "did you mean extract.parser?")
			So(Suggest("http.timout"), ShouldEqual, key.HTTPTimeout)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should convert to the type of the default", func() {
			v, err := Parse(key.HTTPDelay, []string{"250"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 250)

			v, err = Parse(key.SearchCache, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			v, err = Parse(key.PlaylistTitles, []string{"Loki", "WandaVision"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"Loki", "WandaVision"})
		})

		Convey("Should reject values that do not parse or validate", func() {
			_, err := Parse(key.HTTPDelay, []string{"soon"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.ExtractParser, []string{"lua"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.ExtractParser, []string{"js", "regex"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.OriginURL, nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Should report unknown keys", func() {
			_, err := Parse("origin.host", []string{"x"})
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Save", t, func() {
		_ = Setup()
		_ = filesystem.API().Remove(Path())

		Convey("Should create the config file and then update it", func() {
			viper.Set(key.ExtractParser, "js")
			defer viper.Set(key.ExtractParser, "regex")

			So(Save(), ShouldBeNil)
			data, err := filesystem.API().ReadFile(Path())
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `parser = 'js'`)

			viper.Set(key.HTTPDelay, 250)
			defer viper.Set(key.HTTPDelay, 1000)

			So(Save(), ShouldBeNil)
			data, err = filesystem.API().ReadFile(Path())
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "delay = 250")
		})
	})
}

func TestPretty(t *testing.T) {
	Convey("Pretty", t, func() {
		Convey("Should list the options of enumerated fields", func() {
			f := Default[key.HTTPClient]
			So(f.Pretty(), ShouldContainSubstring, "plain, tls")
		})

		Convey("Should leave free-form fields without options", func() {
			f := Default[key.PlaylistOutput]
			So(f.Pretty(), ShouldNotContainSubstring, "Options:")
		})
	})
}
