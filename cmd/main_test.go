package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	app "github.com/okian/yodataller/internal/app"
	"github.com/okian/yodataller/internal/config"
	"github.com/okian/yodataller/internal/domain/model"
	"github.com/okian/yodataller/pkg/logger"
	"github.com/okian/yodataller/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithWriter(io.Discard); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newFakeSwapi answers every people search with Yaddle.
func newFakeSwapi() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.SearchResult{
			Results: []model.Person{{Name: "Yaddle", Height: "61"}},
		})
	}))
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given configuration pointing at a fake SWAPI", t, func() {
		upstream := newFakeSwapi()
		defer upstream.Close()

		_ = os.Setenv("YODA_ADDR", ":0")
		_ = os.Setenv("YODA_SWAPI_BASE_URL", upstream.URL)
		_ = os.Setenv("YODA_SWAPI_TIMEOUT_MS", "500")
		defer func() {
			_ = os.Unsetenv("YODA_ADDR")
			_ = os.Unsetenv("YODA_SWAPI_BASE_URL")
			_ = os.Unsetenv("YODA_SWAPI_TIMEOUT_MS")
		}()

		ctx := context.Background()
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		svc := app.New(
			app.WithSwapiBaseURL(cfg.SwapiBaseURL),
			app.WithSwapiTimeout(cfg.SwapiTimeout()),
		)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(ctx, svc))
		defer srv.Close()

		convey.Convey("When every public route is requested", func() {
			for path, want := range map[string]int{
				"/":              http.StatusOK,
				"/health_check":  http.StatusOK,
				"/taller/Yaddle": http.StatusOK,
				"/stats":         http.StatusOK,
				"/metrics":       http.StatusOK,
				"/api-docs":      http.StatusOK,
				"/openapi.yaml":  http.StatusOK,
				"/events":        http.StatusNotFound,
			} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, want)
			}
		})

		convey.Convey("When asking about Yaddle", func() {
			resp, err := http.Get(srv.URL + "/taller/Yaddle")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			var body map[string]interface{}
			convey.So(json.NewDecoder(resp.Body).Decode(&body), convey.ShouldBeNil)

			convey.Convey("Then Yoda is taller", func() {
				convey.So(body["taller"], convey.ShouldEqual, true)
				convey.So(body["query"], convey.ShouldEqual, "Yaddle")
			})
		})

		convey.Convey("When the stats are read", func() {
			stats := svc.GetStats()

			convey.Convey("Then they reflect the loaded configuration", func() {
				convey.So(stats["swapiBaseURL"], convey.ShouldEqual, upstream.URL)
				convey.So(stats["swapiTimeoutMs"], convey.ShouldEqual, int64(500))
				convey.So(stats["started"], convey.ShouldBeTrue)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When the listen address is empty", func() {
			_ = os.Setenv("YODA_ADDR", "")
			defer func() { _ = os.Unsetenv("YODA_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given metrics settings", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "jedi"
		cfg.MetricsRefreshMS = 1500
		metrics.Init(metricsOptions(cfg)...)
		defer metrics.Init()

		convey.Convey("Then the global manager follows them", func() {
			convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 1500*time.Millisecond)
			metrics.RecordComparison("taller")
			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			convey.So(families, convey.ShouldNotBeEmpty)
			convey.So(families[0].GetName(), convey.ShouldStartWith, "jedi_taller_")
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a handler", t, func() {
		srv := newHTTPServer(":8000", http.NotFoundHandler())

		convey.Convey("Then the listener timeouts are applied", func() {
			convey.So(srv.Addr, convey.ShouldEqual, ":8000")
			convey.So(srv.ReadTimeout, convey.ShouldEqual, readTimeout)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
			convey.So(srv.IdleTimeout, convey.ShouldEqual, idleTimeout)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When it runs until its context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() {
				startSystemMetricsUpdater(ctx, 10*time.Millisecond)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When updating once", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
