package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it registers under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.gamesSubmitted.WithLabelValues("1P").Inc()

				n, err := testutil.GatherAndCount(registry, "duelboard_leaderboard_games_submitted_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("board"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.statsQueries.Inc()

			Convey("Then the names and labels follow the options", func() {
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
				expected := `
# HELP test_board_stats_queries_total Total number of stats computations
# TYPE test_board_stats_queries_total counter
test_board_stats_queries_total{env="test"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_board_stats_queries_total")
				So(err, ShouldBeNil)
			})
		})

		Convey("When options receive empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "duelboard")
				So(manager.subsystem, ShouldEqual, "leaderboard")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.constLabels, ShouldBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording game submissions", func() {
			before := testutil.ToFloat64(globalManager.gamesSubmitted.WithLabelValues("2P"))
			RecordGameSubmitted("2P")
			RecordGameSubmitted("2P")

			Convey("Then the per-mode counter grows", func() {
				So(testutil.ToFloat64(globalManager.gamesSubmitted.WithLabelValues("2P")), ShouldEqual, before+2)
			})
		})

		Convey("When recording validation failures", func() {
			before := testutil.ToFloat64(globalManager.validationFailures)
			RecordValidationFailure()
			So(testutil.ToFloat64(globalManager.validationFailures), ShouldEqual, before+1)
		})

		Convey("When recording a stats query", func() {
			RecordStatsQuery(42)
			So(testutil.ToFloat64(globalManager.gamesStored), ShouldEqual, 42)
		})

		Convey("When recording store failures", func() {
			before := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("scan"))
			RecordStoreError("scan")
			So(testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("scan")), ShouldEqual, before+1)
		})

		Convey("When recording the remaining metrics", func() {
			So(func() {
				RecordLeaderboardQuery("all", 10)
				RecordStoreLatency("insert", 1.5)
				RecordHTTPRequest("/api/games", "POST", "201")
				RecordHTTPRequestDuration("/api/games", "POST", "201", 3.0)
				RecordErrorByComponent("repository", "storage")
				RecordErrorByEndpoint("/api/games", "POST", "validation_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When gathering the registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then only duelboard metrics are exported", func() {
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "duelboard_")
				}
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(globalManager.gamesSubmitted.WithLabelValues("1P"))
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				RecordGameSubmitted("1P")
				RecordStoreLatency("insert", 0.5)
			}()
		}
		wg.Wait()

		Convey("Then no increments are lost", func() {
			So(testutil.ToFloat64(globalManager.gamesSubmitted.WithLabelValues("1P")), ShouldEqual, before+50)
		})
	})
}
