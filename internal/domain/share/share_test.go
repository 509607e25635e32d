package share_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/share"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTextBuilder(t *testing.T) {
	Convey("Given a share text builder with the default base URL", t, func() {
		b := share.NewTextBuilder("")
		top := []share.Line{
			{Name: "ハナ", GroupName: "ルミナ"},
			{Name: "ジウ", GroupName: "スターリット"},
			{Name: "リナ"},
			{Name: "ミナ", GroupName: "ルミナ"},
		}

		Convey("When rendering Japanese", func() {
			text := b.Text(locale.JA, top)

			Convey("Then the template matches line by line", func() {
				So(text, ShouldEqual, strings.Join([]string{
					"【韓国地下アイドル推し診断】",
					"",
					"私の結果はこれ👇",
					"👑 ハナ（ルミナ）",
					"🥈 ジウ（スターリット）",
					"🥉 リナ",
					"",
					"あなたの1位は誰だった？",
					"結果リプで教えてほしい👀",
					"#推しチェッカー #韓国地下アイドル",
					"https://oshichecker2.vercel.app/ja",
				}, "\n"))
			})
		})

		Convey("When rendering Korean", func() {
			text := b.Text(locale.KO, []share.Line{{Name: "하나", GroupName: "루미나"}})

			Convey("Then it uses the Korean template and hashtags", func() {
				So(text, ShouldEqual, strings.Join([]string{
					"【지하아이돌 오시 진단】",
					"",
					"제 결과는 이거예요👇",
					"👑 하나（루미나）",
					"",
					"여러분의 1위는 누구였어요?",
					"댓글로 알려주세요👀",
					"#오시체커 #지하아이돌",
					"https://oshichecker2.vercel.app/ko",
				}, "\n"))
			})
		})

		Convey("When rendering English", func() {
			text := b.Text(locale.EN, top[:2])

			Convey("Then it has no hashtag line", func() {
				So(text, ShouldEqual, strings.Join([]string{
					"【Korean Underground Idol Bias Test】",
					"",
					"Here is my result👇",
					"👑 ハナ（ルミナ）",
					"🥈 ジウ（スターリット）",
					"",
					"Who was your #1?",
					"Let me know your result in the replies 👀",
					"https://oshichecker2.vercel.app/en",
				}, "\n"))
			})
		})

		Convey("When the locale is unknown", func() {
			text := b.Text(locale.Locale("fr"), nil)

			Convey("Then the Japanese template is used", func() {
				So(text, ShouldStartWith, "【韓国地下アイドル推し診断】")
				So(text, ShouldEndWith, "/ja")
			})
		})
	})

	Convey("Given a custom base URL with a trailing slash", t, func() {
		b := share.NewTextBuilder("https://oshi.example.com/")
		So(b.Text(locale.EN, nil), ShouldEndWith, "\nhttps://oshi.example.com/en")
	})
}

func TestIntentURL(t *testing.T) {
	Convey("Given share text", t, func() {
		text := "Who was your #1?\n👑 Hana (LUMINA) & 'me'*!"
		u := share.IntentURL(text)

		Convey("Then it targets the compose endpoint", func() {
			So(u, ShouldStartWith, "https://twitter.com/intent/tweet?text=")
		})

		Convey("Then it encodes like encodeURIComponent", func() {
			So(u, ShouldContainSubstring, "Who%20was%20your%20%231%3F%0A")
			So(u, ShouldContainSubstring, "(LUMINA)%20%26%20'me'*!")
			So(u, ShouldNotContainSubstring, "+")
		})

		Convey("Then the text round-trips through the query", func() {
			parsed, err := url.Parse(u)
			So(err, ShouldBeNil)
			So(parsed.Query().Get("text"), ShouldEqual, text)
		})
	})
}
