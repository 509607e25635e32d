// Package locale defines the languages the site is published in.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnsupportedLocale is returned for any locale outside the published set.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Locale is a published site language.
type Locale string

// Published locales. Japanese is the default.
const (
	JA Locale = "ja"
	KO Locale = "ko"
	EN Locale = "en"

	Default = JA
)

// All lists the published locales, default first.
var All = []Locale{JA, KO, EN}

var matcher = language.NewMatcher([]language.Tag{
	language.Japanese,
	language.Korean,
	language.English,
})

// Parse validates s as a published locale.
func Parse(s string) (Locale, error) {
	switch l := Locale(strings.ToLower(strings.TrimSpace(s))); l {
	case JA, KO, EN:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
	}
}

// ParseOrDefault returns the parsed locale, or Default when s is empty or
// not published.
func ParseOrDefault(s string) Locale {
	l, err := Parse(s)
	if err != nil {
		return Default
	}
	return l
}

// Negotiate picks the best published locale for an Accept-Language header.
func Negotiate(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return All[idx]
}

// OGLocale returns the Open Graph locale string.
func (l Locale) OGLocale() string {
	switch l {
	case KO:
		return "ko_KR"
	case EN:
		return "en_US"
	default:
		return "ja_JP"
	}
}

func (l Locale) String() string { return string(l) }
