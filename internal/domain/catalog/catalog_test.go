package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/oshichecker/internal/domain/catalog"
	"github.com/okian/oshichecker/internal/domain/locale"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the embedded catalog", t, func() {
		c, err := catalog.Default()
		So(err, ShouldBeNil)

		Convey("Then it has members in file order", func() {
			So(c.Len(), ShouldEqual, 12)
			So(c.MemberIDs()[0], ShouldEqual, "lumina-hana")
			So(len(c.Groups()), ShouldEqual, 3)
		})

		Convey("Then names are localized with a Japanese fallback", func() {
			m, err := c.Member("moonrise-haru")
			So(err, ShouldBeNil)
			So(m.Names.In(locale.KO), ShouldEqual, "하루")
			So(m.Names.In(locale.EN), ShouldEqual, "ハル")
			So(c.GroupName(m, locale.EN), ShouldEqual, "MOONRISE")
		})

		Convey("Then unknown members are reported", func() {
			_, err := c.Member("nobody")
			So(errors.Is(err, catalog.ErrUnknownMember), ShouldBeTrue)
		})

		Convey("Then groups without a blog have an empty URL", func() {
			g, ok := c.Group("moonrise")
			So(ok, ShouldBeTrue)
			So(g.BlogURL, ShouldBeEmpty)
		})

		Convey("Then the returned slices are copies", func() {
			ms := c.Members()
			ms[0].ID = "changed"
			So(c.MemberIDs()[0], ShouldEqual, "lumina-hana")
		})
	})
}

func TestCatalogValidation(t *testing.T) {
	Convey("Given malformed catalogs", t, func() {
		Convey("When a member id repeats", func() {
			_, err := catalog.Parse([]byte(`
groups: [{id: g, names: {ja: G}}]
members:
  - {id: a, group_id: g, names: {ja: A}}
  - {id: a, group_id: g, names: {ja: B}}
`))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `duplicate member "a"`)
		})

		Convey("When a member points at a missing group", func() {
			_, err := catalog.Parse([]byte(`
members:
  - {id: a, group_id: ghost, names: {ja: A}}
`))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When a Japanese name is missing", func() {
			_, err := catalog.Parse([]byte(`
members:
  - {id: a, names: {en: A}}
`))
			So(errors.Is(err, catalog.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When the YAML is broken", func() {
			_, err := catalog.Parse([]byte(`members: [`))
			So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a catalog file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.yaml")
		So(os.WriteFile(path, []byte(`
groups: [{id: g, names: {ja: ジー, en: G}}]
members: [{id: m, group_id: g, names: {ja: エム}}]
`), 0o600), ShouldBeNil)

		Convey("Then it loads", func() {
			c, err := catalog.Load(path)
			So(err, ShouldBeNil)
			So(c.MemberIDs(), ShouldResemble, []string{"m"})
		})

		Convey("Then a missing file is a load error", func() {
			_, err := catalog.Load(filepath.Join(dir, "missing.yaml"))
			So(errors.Is(err, catalog.ErrLoadCatalog), ShouldBeTrue)
		})
	})
}

func TestLocalize(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		c, err := catalog.Default()
		So(err, ShouldBeNil)

		Convey("When rendering it in English", func() {
			v := c.Localize(locale.EN)

			Convey("Then names are localized with a ja fallback", func() {
				So(v.Locale, ShouldEqual, locale.EN)
				So(len(v.Groups), ShouldEqual, 3)
				So(v.Groups[0], ShouldResemble, catalog.GroupView{ID: "lumina", Name: "LUMINA", BlogURL: "https://lumina.example.com/blog"})
				last := v.Members[len(v.Members)-1]
				So(last.ID, ShouldEqual, "moonrise-nari")
				So(last.GroupName, ShouldEqual, "MOONRISE")
				So(v.Members[10].Name, ShouldEqual, "ハル")
			})
		})
	})
}
