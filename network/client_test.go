package network

import (
	"net/http"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		Convey("Plain should use a tuned standard transport", func() {
			c, err := New(Plain, 5*time.Second)
			So(err, ShouldBeNil)
			So(c.Timeout, ShouldEqual, 5*time.Second)

			tr, ok := c.Transport.(*http.Transport)
			So(ok, ShouldBeTrue)
			So(tr.MaxIdleConnsPerHost, ShouldEqual, 100)
		})

		Convey("TLS should use the fingerprinting transport", func() {
			c, err := New(TLS, time.Second)
			So(err, ShouldBeNil)
			_, ok := c.Transport.(*chromeTransport)
			So(ok, ShouldBeTrue)
		})

		Convey("Unknown variants should be rejected", func() {
			_, err := New("curl", time.Second)
			So(err, ShouldNotBeNil)
		})
	})
}
