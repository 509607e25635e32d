package probe

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVerifyScores(t *testing.T) {
	Convey("Given a three candidate ranking", t, func() {
		ranking := []string{"a", "b", "c"}

		Convey("Then the curve's answer verifies", func() {
			ties, err := verifyScores(ranking, map[string]int{"a": 99, "b": 85, "c": 60})
			So(err, ShouldBeNil)
			So(ties, ShouldEqual, 0)
		})

		Convey("Then a wrong value is reported", func() {
			_, err := verifyScores(ranking, map[string]int{"a": 99, "b": 84, "c": 60})
			So(err, ShouldNotBeNil)
		})

		Convey("Then a missing id is reported", func() {
			_, err := verifyScores(ranking, map[string]int{"a": 99, "b": 85, "x": 60})
			So(err, ShouldNotBeNil)
		})
	})
}
