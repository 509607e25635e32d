// Package meta builds per-locale page metadata for Open Graph and Twitter
// cards.
package meta

import (
	"fmt"
	"strings"

	"github.com/okian/oshichecker/internal/domain/locale"
)

// FallbackSiteURL is used when neither an explicit nor a Vercel URL is set.
const FallbackSiteURL = "https://oshichecker.example.com"

// Card image dimensions.
const (
	ImageWidth  = 1200
	ImageHeight = 630
)

// TwitterCard is the card type every page advertises.
const TwitterCard = "summary_large_image"

// Page names a page that carries metadata.
type Page string

const (
	PageHome   Page = "home"
	PageResult Page = "result"
)

// ParsePage validates s as a known page.
func ParsePage(s string) (Page, error) {
	switch p := Page(strings.ToLower(strings.TrimSpace(s))); p {
	case PageHome, PageResult:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
}

// Image is the card image.
type Image struct {
	URL    string `json:"url"`
	Type   string `json:"type,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt"`
}

// Metadata is everything a page head needs.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SiteName    string `json:"site_name"`
	Type        string `json:"type"`
	OGLocale    string `json:"og_locale"`
	URL         string `json:"url"`
	Image       Image  `json:"image"`
	TwitterCard string `json:"twitter_card"`
}

type copyText struct {
	title       string
	description string
}

var siteNames = map[locale.Locale]string{
	locale.JA: "推しチェッカー",
	locale.KO: "오시체커",
	locale.EN: "Oshi Checker",
}

var pageCopy = map[Page]map[locale.Locale]copyText{
	PageHome: {
		locale.JA: {
			title:       "推しチェッカー | 韓国地下アイドル診断",
			description: "あなたにぴったりの韓国地下アイドルメンバーを診断します。アンケートと二択バトルで、運命の推しを見つけよう！",
		},
		locale.KO: {
			title:       "오시체커 | 한국 지하 아이돌 진단",
			description: "당신에게 딱 맞는 한국 지하 아이돌 멤버를 진단합니다. 설문과 밸런스 게임으로 운명의 최애를 찾아보세요!",
		},
		locale.EN: {
			title:       "Oshi Checker | Korean Underground Idol Test",
			description: "Find your perfect Korean underground idol member. Take the survey and battles to discover your fate bias!",
		},
	},
	PageResult: {
		locale.JA: {
			title:       "診断結果 | 推しチェッカー",
			description: "あなたの推しメンバー TOP3 が決定しました！結果をシェアしよう！",
		},
		locale.KO: {
			title:       "진단 결과 | 오시체커",
			description: "당신의 최애 멤버 TOP3가 결정되었습니다! 결과를 공유해보세요!",
		},
		locale.EN: {
			title:       "Results | Oshi Checker",
			description: "Your Top 3 bias members have been determined! Share your results!",
		},
	},
}

// DefaultImages are the published card images.
var DefaultImages = map[locale.Locale]string{
	locale.JA: "https://assets.st-note.com/img/1770787818-nq9wT6rolLp0CkSmhIFZzi58.png",
	locale.KO: "https://assets.st-note.com/img/1770787818-BHEhOT3azXFtRyP8JAbjMovC.png",
	locale.EN: "https://assets.st-note.com/img/1770787818-WnJw2KTdijZ9erc1sYtkbGEL.png",
}

// ResolveSiteURL picks the public site URL: an explicit URL wins, then the
// Vercel deployment host, then FallbackSiteURL.
func ResolveSiteURL(explicit, vercelHost string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return strings.TrimRight(s, "/")
	}
	if h := strings.Trim(strings.TrimSpace(vercelHost), "/"); h != "" {
		return "https://" + h
	}
	return FallbackSiteURL
}

// Builder renders Metadata for a site.
type Builder struct {
	siteURL string
	images  map[locale.Locale]string
}

// NewBuilder returns a Builder for siteURL. images overrides DefaultImages
// per locale; missing locales keep the default.
func NewBuilder(siteURL string, images map[string]string) *Builder {
	b := &Builder{
		siteURL: ResolveSiteURL(siteURL, ""),
		images:  make(map[locale.Locale]string, len(DefaultImages)),
	}
	for l, u := range DefaultImages {
		b.images[l] = u
	}
	for k, u := range images {
		l, err := locale.Parse(k)
		if err != nil || strings.TrimSpace(u) == "" {
			continue
		}
		b.images[l] = strings.TrimSpace(u)
	}
	return b
}

// SiteURL returns the resolved public URL.
func (b *Builder) SiteURL() string { return b.siteURL }

// For returns the metadata of page in l. Unpublished locales render the
// Japanese copy.
func (b *Builder) For(l locale.Locale, page Page) (Metadata, error) {
	texts, ok := pageCopy[page]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	if _, err := locale.Parse(l.String()); err != nil {
		l = locale.Default
	}
	c := texts[l]

	url := b.siteURL + "/" + l.String()
	if page == PageResult {
		url += "/result"
	}

	img := Image{
		URL:    b.images[l],
		Width:  ImageWidth,
		Height: ImageHeight,
		Alt:    c.title,
	}
	// The result page never declared an image type.
	if page == PageHome {
		img.Type = "image/png"
	}

	return Metadata{
		Title:       c.title,
		Description: c.description,
		SiteName:    siteNames[l],
		Type:        "website",
		OGLocale:    l.OGLocale(),
		URL:         url,
		Image:       img,
		TwitterCard: TwitterCard,
	}, nil
}
