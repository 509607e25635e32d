package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "oshichecker")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithRankingBuckets([]float64{10, 100, 1000}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
				So(manager.rankingBuckets, ShouldResemble, []float64{10, 100, 1000})
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithRankingBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "oshichecker")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.rankingBuckets, ShouldHaveLength, 11)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording domain metrics", func() {
			So(func() {
				RecordScoreMap(3, 0)
				RecordScoreMap(60, 4)
				RecordMemoHit()
				RecordMemoMiss()
				RecordRankingRejected("duplicate_candidate")
				RecordResultRendered("ja", false)
				RecordResultRendered("en", true)
				RecordShareIntent("ko")
				RecordShareDebounced()
				UpdateCatalogMembers(12)
			}, ShouldNotPanic)

			Convey("Then the families are exposed on the registry", func() {
				names, err := FamilyNames()
				So(err, ShouldBeNil)
				So(names, ShouldContain, "oshichecker_result_score_maps_total")
				So(names, ShouldContain, "oshichecker_result_floor_ties_total")
				So(names, ShouldContain, "oshichecker_result_results_rendered_total")
				So(names, ShouldContain, "oshichecker_result_share_intents_total")
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/v1/scores", "POST", "200")
				RecordHTTPRequestDuration("/api/v1/scores", "POST", "200", 1.5)
				RecordErrorByEndpoint("/api/v1/share", "POST", "rate_limit")
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordScoreMap(j%40, 0)
					RecordHTTPRequest("/test", "GET", "200")
				}
			}(i)
		}
		wg.Wait()

		Convey("Then gathering still succeeds", func() {
			_, err := FamilyNames()
			So(err, ShouldBeNil)
		})
	})
}
