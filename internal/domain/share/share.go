// Package share builds the social-share text for a result and the X compose
// URL that carries it.
package share

import (
	"net/url"
	"strings"

	"github.com/okian/oshichecker/internal/domain/locale"
)

// DefaultBaseURL is the public site the share text links back to.
const DefaultBaseURL = "https://oshichecker2.vercel.app"

// MaxLines is the number of ranked members quoted in the share text.
const MaxLines = 3

const intentEndpoint = "https://twitter.com/intent/tweet?text="

var rankEmojis = [MaxLines]string{"👑", "🥈", "🥉"}

// Line is one ranked member as shown in the share text.
type Line struct {
	Name      string
	GroupName string
}

type template struct {
	header []string
	footer []string
}

var templates = map[locale.Locale]template{
	locale.JA: {
		header: []string{"【韓国地下アイドル推し診断】", "", "私の結果はこれ👇"},
		footer: []string{"", "あなたの1位は誰だった？", "結果リプで教えてほしい👀", "#推しチェッカー #韓国地下アイドル"},
	},
	locale.KO: {
		header: []string{"【지하아이돌 오시 진단】", "", "제 결과는 이거예요👇"},
		footer: []string{"", "여러분의 1위는 누구였어요?", "댓글로 알려주세요👀", "#오시체커 #지하아이돌"},
	},
	locale.EN: {
		header: []string{"【Korean Underground Idol Bias Test】", "", "Here is my result👇"},
		footer: []string{"", "Who was your #1?", "Let me know your result in the replies 👀"},
	},
}

// TextBuilder renders share text with one fixed template per locale.
type TextBuilder struct {
	baseURL string
}

// NewTextBuilder returns a builder linking to baseURL; empty means DefaultBaseURL.
func NewTextBuilder(baseURL string) *TextBuilder {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &TextBuilder{baseURL: baseURL}
}

// Text renders the share block for the first MaxLines of top. Unknown
// locales use the Japanese template.
func (b *TextBuilder) Text(l locale.Locale, top []Line) string {
	tpl, ok := templates[l]
	if !ok {
		l = locale.Default
		tpl = templates[l]
	}
	if len(top) > MaxLines {
		top = top[:MaxLines]
	}

	lines := make([]string, 0, len(tpl.header)+len(top)+len(tpl.footer)+1)
	lines = append(lines, tpl.header...)
	for i, t := range top {
		lines = append(lines, rankEmojis[i]+" "+t.Name+groupSuffix(t.GroupName))
	}
	lines = append(lines, tpl.footer...)
	lines = append(lines, b.baseURL+"/"+l.String())
	return strings.Join(lines, "\n")
}

func groupSuffix(group string) string {
	if group == "" {
		return ""
	}
	return "（" + group + "）"
}

// IntentURL returns the X compose URL pre-filled with text.
func IntentURL(text string) string {
	return intentEndpoint + EncodeURIComponent(text)
}

// EncodeURIComponent escapes s the way browsers' encodeURIComponent does:
// spaces become %20 and !'()* stay literal.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
