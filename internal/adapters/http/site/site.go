// Package site serves the HTML shell of each localized page. The shell only
// carries the page head (Open Graph and Twitter card tags); the quiz itself
// runs in the browser.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/meta"
)

// Error constants.
var (
	ErrRender = errors.New("site page render failed")
)

//go:embed templates/page.html.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html.tmpl"))

// MetaProvider renders page metadata.
type MetaProvider interface {
	Meta(ctx context.Context, l locale.Locale, page meta.Page) (meta.Metadata, error)
}

type alternate struct {
	Locale locale.Locale
	URL    string
}

type pageData struct {
	Locale     locale.Locale
	Page       meta.Page
	Meta       meta.Metadata
	Alternates []alternate
}

// Register attaches the page routes to r:
//
//	GET /                   -> redirect to the negotiated locale
//	GET /{locale}           -> home shell
//	GET /{locale}/result    -> result shell
func Register(_ context.Context, r chi.Router, provider MetaProvider) {
	if r == nil {
		panic("router is nil")
	}
	h := &handler{provider: provider}
	r.Get("/", h.handleRoot)
	r.Get("/{locale}", h.page(meta.PageHome))
	r.Get("/{locale}/result", h.page(meta.PageResult))
}

type handler struct {
	provider MetaProvider
}

func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	l := locale.Negotiate(r.Header.Get("Accept-Language"))
	http.Redirect(w, r, "/"+l.String(), http.StatusFound)
}

func (h *handler) page(p meta.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := locale.Parse(chi.URLParam(r, "locale"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		body, err := h.render(r.Context(), l, p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Language", l.String())
		_, _ = w.Write(body)
	}
}

func (h *handler) render(ctx context.Context, l locale.Locale, p meta.Page) ([]byte, error) {
	m, err := h.provider.Meta(ctx, l, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	data := pageData{Locale: l, Page: p, Meta: m}
	for _, other := range locale.All {
		if other == l {
			continue
		}
		data.Alternates = append(data.Alternates, alternate{
			Locale: other,
			URL:    swapLocale(m.URL, l, other),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// swapLocale rewrites the locale path segment of a page URL.
func swapLocale(url string, from, to locale.Locale) string {
	seg := "/" + from.String()
	i := strings.LastIndex(url, seg)
	if i < 0 {
		return url
	}
	rest := url[i+len(seg):]
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return url
	}
	return url[:i] + "/" + to.String() + rest
}
