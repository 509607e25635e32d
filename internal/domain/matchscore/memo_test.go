package matchscore_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/okian/oshichecker/internal/domain/matchscore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoMapper(t *testing.T) {
	Convey("Given a memo mapper with room for two rankings", t, func() {
		memo := matchscore.NewMemoMapper(matchscore.Default(), 2)
		ranking := []string{"A", "B", "C"}

		Convey("When the same ranking is mapped twice", func() {
			first, err := memo.MapDetailed(ranking)
			So(err, ShouldBeNil)
			second, err := memo.MapDetailed(ranking)
			So(err, ShouldBeNil)

			Convey("Then the second call is served from cache with equal scores", func() {
				So(first.Cached, ShouldBeFalse)
				So(second.Cached, ShouldBeTrue)
				So(second.Scores, ShouldResemble, first.Scores)
			})

			Convey("Then callers get independent maps", func() {
				second.Scores["A"] = 1
				third, _ := memo.Map(ranking)
				So(third["A"], ShouldEqual, 99)
			})
		})

		Convey("When ids split differently", func() {
			a, _ := memo.MapDetailed([]string{"ab", "c"})
			b, _ := memo.MapDetailed([]string{"a", "bc"})

			Convey("Then they do not share a cache entry", func() {
				So(a.Cached, ShouldBeFalse)
				So(b.Cached, ShouldBeFalse)
				So(memo.Len(), ShouldEqual, 2)
			})
		})

		Convey("When more rankings than the cache holds are mapped", func() {
			_, _ = memo.Map([]string{"1"})
			_, _ = memo.Map([]string{"2"})
			_, _ = memo.Map([]string{"3"})

			Convey("Then the oldest is evicted", func() {
				So(memo.Len(), ShouldEqual, 2)
				out, _ := memo.MapDetailed([]string{"1"})
				So(out.Cached, ShouldBeFalse)
				out, _ = memo.MapDetailed([]string{"3"})
				So(out.Cached, ShouldBeTrue)
			})
		})

		Convey("When the ranking is invalid", func() {
			_, err := memo.Map([]string{"A", "A"})

			Convey("Then the error passes through and nothing is cached", func() {
				So(errors.Is(err, matchscore.ErrDuplicateCandidate), ShouldBeTrue)
				So(memo.Len(), ShouldEqual, 0)
			})
		})

		Convey("When used from many goroutines", func() {
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						_, _ = memo.Map(ranking)
					}
				}()
			}
			wg.Wait()

			Convey("Then the cache stays bounded", func() {
				So(memo.Len(), ShouldBeLessThanOrEqualTo, 2)
			})
		})
	})

	Convey("Given a memo mapper with caching disabled", t, func() {
		memo := matchscore.NewMemoMapper(nil, 0)
		out, err := memo.MapDetailed([]string{"A"})
		So(err, ShouldBeNil)
		So(out.Cached, ShouldBeFalse)
		out, _ = memo.MapDetailed([]string{"A"})
		So(out.Cached, ShouldBeFalse)
		So(memo.Len(), ShouldEqual, 0)
	})

	Convey("Given a long ranking", t, func() {
		memo := matchscore.NewMemoMapper(nil, 4)
		out, err := memo.MapDetailed(ids("f", 60))
		So(err, ShouldBeNil)
		So(out.FloorTies, ShouldBeGreaterThan, 0)
	})
}
