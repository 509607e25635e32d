package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"

	"github.com/okian/oshichecker/internal/adapters/http/api"
	service "github.com/okian/oshichecker/internal/app"
	"github.com/okian/oshichecker/internal/domain/result"
	"github.com/okian/oshichecker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// execute runs the root command with args after resetting every flag.
func execute(args ...string) (string, error) {
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	Convey("Given the score command", t, func() {
		Convey("When three ids are ranked", func() {
			out, err := execute("score", "a", "b", "c")
			So(err, ShouldBeNil)

			var got []scoredEntry
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)

			Convey("Then the default curve is printed in ranking order", func() {
				So(got, ShouldResemble, []scoredEntry{
					{Rank: 1, ID: "a", Score: 99},
					{Rank: 2, ID: "b", Score: 85},
					{Rank: 3, ID: "c", Score: 60},
				})
			})
		})

		Convey("When an id repeats", func() {
			_, err := execute("score", "a", "b", "a")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "failed to map ranking")
			})
		})

		Convey("When no ids are given", func() {
			out, err := execute("score")

			Convey("Then an empty list is printed", func() {
				So(err, ShouldBeNil)
				So(strings.TrimSpace(out), ShouldEqual, "[]")
			})
		})
	})
}

func TestShareCommand(t *testing.T) {
	ranking := []string{"lumina-hana", "starlit-jiwoo", "moonrise-haru", "lumina-yuri"}

	Convey("Given the share command", t, func() {
		Convey("When rendering the Japanese share text", func() {
			out, err := execute(append([]string{"share"}, ranking...)...)

			Convey("Then the top three appear with their groups", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "👑 ハナ（ルミナ）")
				So(out, ShouldContainSubstring, "🥈 ジウ（スターリット）")
				So(out, ShouldContainSubstring, "🥉 ハル（ムーンライズ）")
				So(out, ShouldNotContainSubstring, "ユリ")
				So(out, ShouldContainSubstring, "https://twitter.com/intent/tweet?text=")
			})
		})

		Convey("When rendering English as JSON with a custom base URL", func() {
			args := append([]string{"share", "--locale", "en", "--json", "--base-url", "https://oshi.example.org/"}, ranking...)
			out, err := execute(args...)
			So(err, ShouldBeNil)

			var s result.Share
			So(json.Unmarshal([]byte(out), &s), ShouldBeNil)

			Convey("Then names are English and the link uses the base URL", func() {
				So(s.Text, ShouldContainSubstring, "👑 Hana（LUMINA）")
				So(s.Text, ShouldContainSubstring, "https://oshi.example.org/en")
				So(s.IntentURL, ShouldStartWith, "https://twitter.com/intent/tweet?text=")
			})
		})

		Convey("When the locale is unsupported", func() {
			_, err := execute("share", "--locale", "fr", "lumina-hana")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "invalid locale")
			})
		})

		Convey("When a member is not in the catalog", func() {
			_, err := execute("share", "lumina-hana", "ghost")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "ghost")
			})
		})

		Convey("When a catalog file is given", func() {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			raw := "groups:\n  - id: g\n    names: { ja: ジー }\nmembers:\n  - { id: m, group_id: g, names: { ja: エム } }\n"
			So(os.WriteFile(path, []byte(raw), 0o600), ShouldBeNil)

			out, err := execute("share", "--catalog", path, "m")

			Convey("Then members resolve from that file", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "👑 エム（ジー）")
			})
		})
	})
}

func TestProbeCommand(t *testing.T) {
	Convey("Given a running server", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		So(svc.Start(context.Background()), ShouldBeNil)
		r := chi.NewRouter()
		r.Use(api.Middleware(nil)...)
		api.NewServer(svc, svc).Register(context.Background(), r)
		srv := httptest.NewServer(r)
		defer srv.Close()

		Convey("When probing it", func() {
			out, err := execute("probe", "--url", srv.URL, "--rankings", "20", "--workers", "2", "--seed", "7")

			Convey("Then the run verifies and prints its stats", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "seed:       7")
				So(out, ShouldContainSubstring, "verified:   20")
				So(out, ShouldContainSubstring, "failed:     0")
			})
		})

		Convey("When the server is unreachable", func() {
			_, err := execute("probe", "--url", "http://127.0.0.1:1", "--rankings", "1", "--timeout", "200ms")

			Convey("Then the command fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "probe failed")
			})
		})
	})
}
