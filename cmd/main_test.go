package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/duelboard/internal/adapters/http/api"
	"github.com/okian/duelboard/internal/config"
	"github.com/okian/duelboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Addr = "127.0.0.1:0"
	cfg.Env = config.EnvDevelopment
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the application handler on a memory store", t, func() {
		ctx := context.Background()
		cfg := testConfig()
		svc := newService(cfg)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, cfg, svc)

		convey.Convey("When a game is posted and the leaderboard read back", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/games",
				strings.NewReader(`{"mode":"1P","player1":{"name":"Alice","score":1500,"lines":15}}`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)

			w = httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/leaderboard?mode=1P", http.NoBody))

			convey.Convey("Then the response carries the entry and a request id", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"player_name":"Alice"`)
				convey.So(w.Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When a development origin sends a preflight", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/games", http.NoBody)
			req.Header.Set("Origin", "http://127.0.0.1:5173")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.Convey("Then it is allowed", func() {
				convey.So(w.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "http://127.0.0.1:5173")
			})
		})

		convey.Convey("When the docs are requested", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a sqlite backed configuration", t, func() {
		cfg := testConfig()
		cfg.StoreDriver = "sqlite"
		cfg.DatabaseURL = filepath.Join(t.TempDir(), "games.db")

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()
			time.Sleep(100 * time.Millisecond)
			cancel()

			convey.Convey("Then run shuts down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					t.Fatal("run did not return")
				}
			})
		})
	})

	convey.Convey("Given a store that cannot be opened", t, func() {
		cfg := testConfig()
		cfg.StoreDriver = "postgres"
		cfg.DatabaseURL = ""

		convey.Convey("Then run fails before serving", func() {
			convey.So(run(context.Background(), cfg), convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given an address that is already taken", t, func() {
		ln, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		defer ln.Close()

		cfg := testConfig()
		cfg.Addr = ln.Addr().String()

		convey.Convey("Then run returns the listen error", func() {
			convey.So(run(context.Background(), cfg), convey.ShouldNotBeNil)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
	})
}
