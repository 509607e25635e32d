package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	service "github.com/okian/oshichecker/internal/app"
	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/share"
	"github.com/okian/oshichecker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceConcurrency(t *testing.T) {
	Convey("Given a service with concurrent callers", t, func() {
		svc := startedService(service.WithLogger(logger.Nop()), service.WithScoreCacheSize(4))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When many goroutines render results", func() {
			var wg sync.WaitGroup
			var failures atomic.Int64
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					r := append([]string(nil), ranking...)
					r[0], r[i%len(r)] = r[i%len(r)], r[0]
					res, err := svc.Result(ctx, locale.All[i%len(locale.All)], r)
					if err != nil || *res.Podium[0].MatchPercent != 99 {
						failures.Add(1)
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every result is complete", func() {
				So(failures.Load(), ShouldEqual, 0)
				So(svc.GetStats()["memoEntries"], ShouldBeLessThanOrEqualTo, 4)
			})
		})

		Convey("When one client hammers the share endpoint", func() {
			var wg sync.WaitGroup
			var ok, debounced atomic.Int64
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.Share(ctx, locale.JA, ranking, "same-client")
					switch {
					case err == nil:
						ok.Add(1)
					case errors.Is(err, share.ErrDebounced):
						debounced.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one share goes through", func() {
				So(ok.Load(), ShouldEqual, 1)
				So(debounced.Load(), ShouldEqual, 15)
			})
		})

		Convey("When distinct clients share at once", func() {
			var wg sync.WaitGroup
			var ok atomic.Int64
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					if _, err := svc.Share(ctx, locale.EN, ranking, fmt.Sprintf("client-%d", i)); err == nil {
						ok.Add(1)
					}
				}(i)
			}
			wg.Wait()

			So(ok.Load(), ShouldEqual, 16)
		})
	})
}
