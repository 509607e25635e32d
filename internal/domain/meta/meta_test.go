package meta_test

import (
	"errors"
	"testing"

	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/meta"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveSiteURL(t *testing.T) {
	Convey("Given the site URL sources", t, func() {
		Convey("Then an explicit URL wins", func() {
			So(meta.ResolveSiteURL("https://oshi.example.org/", "oshi.vercel.app"), ShouldEqual, "https://oshi.example.org")
		})

		Convey("Then the Vercel host is used next", func() {
			So(meta.ResolveSiteURL("", "oshichecker2.vercel.app"), ShouldEqual, "https://oshichecker2.vercel.app")
		})

		Convey("Then the fallback is used last", func() {
			So(meta.ResolveSiteURL(" ", ""), ShouldEqual, meta.FallbackSiteURL)
		})
	})
}

func TestBuilder_For(t *testing.T) {
	Convey("Given a builder with one image override", t, func() {
		b := meta.NewBuilder("https://oshi.example.org", map[string]string{"ko": "https://cdn.example.org/ko.png", "xx": "ignored"})

		Convey("When rendering the Korean home page", func() {
			m, err := b.For(locale.KO, meta.PageHome)

			Convey("Then the copy, URL and image follow the locale", func() {
				So(err, ShouldBeNil)
				So(m.Title, ShouldEqual, "오시체커 | 한국 지하 아이돌 진단")
				So(m.SiteName, ShouldEqual, "오시체커")
				So(m.OGLocale, ShouldEqual, "ko_KR")
				So(m.URL, ShouldEqual, "https://oshi.example.org/ko")
				So(m.Image.URL, ShouldEqual, "https://cdn.example.org/ko.png")
				So(m.Image.Type, ShouldEqual, "image/png")
				So(m.Image.Alt, ShouldEqual, m.Title)
				So(m.Image.Width, ShouldEqual, 1200)
				So(m.Image.Height, ShouldEqual, 630)
				So(m.TwitterCard, ShouldEqual, "summary_large_image")
			})
		})

		Convey("When rendering the English result page", func() {
			m, err := b.For(locale.EN, meta.PageResult)

			Convey("Then it points at the result URL with the default image", func() {
				So(err, ShouldBeNil)
				So(m.Title, ShouldEqual, "Results | Oshi Checker")
				So(m.URL, ShouldEqual, "https://oshi.example.org/en/result")
				So(m.Image.URL, ShouldEqual, meta.DefaultImages[locale.EN])
				So(m.Image.Type, ShouldBeEmpty)
			})
		})

		Convey("When the locale is not published", func() {
			m, err := b.For(locale.Locale("fr"), meta.PageHome)
			So(err, ShouldBeNil)
			So(m.OGLocale, ShouldEqual, "ja_JP")
			So(m.URL, ShouldEqual, "https://oshi.example.org/ja")
		})

		Convey("When the page is unknown", func() {
			_, err := b.For(locale.JA, meta.Page("battle"))
			So(errors.Is(err, meta.ErrUnknownPage), ShouldBeTrue)
		})
	})

	Convey("Given an empty site URL", t, func() {
		So(meta.NewBuilder("", nil).SiteURL(), ShouldEqual, meta.FallbackSiteURL)
	})

	Convey("Given page names", t, func() {
		p, err := meta.ParsePage(" Result ")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, meta.PageResult)
		_, err = meta.ParsePage("x")
		So(err, ShouldNotBeNil)
	})
}
