package seeder_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/okian/duelboard/internal/adapters/http/api"
	service "github.com/okian/duelboard/internal/app"
	"github.com/okian/duelboard/internal/domain/model"
	"github.com/okian/duelboard/internal/domain/validation"
	"github.com/okian/duelboard/internal/seeder"
	"github.com/okian/duelboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	r := mux.NewRouter()
	api.NewServer(svc).Register(context.Background(), r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator without invalid games", t, func() {
		games := seeder.NewGenerator(42, 0.5, 0).Games(500)

		Convey("Then every game passes validation", func() {
			var ones, twos int
			for _, g := range games {
				_, err := validation.Validate(g)
				So(err, ShouldBeNil)
				if g.Mode == "2P" {
					twos++
				} else {
					ones++
				}
			}
			So(ones, ShouldBeGreaterThan, 0)
			So(twos, ShouldBeGreaterThan, 0)
		})

		Convey("Then names carry a unique suffix", func() {
			seen := map[string]bool{}
			for _, g := range games {
				So(seen[g.Player1.Name], ShouldBeFalse)
				seen[g.Player1.Name] = true
			}
		})

		Convey("Then the winner matches the higher score", func() {
			for _, g := range games {
				if g.Winner == nil || g.Player2 == nil {
					continue
				}
				if *g.Winner == model.SlotPlayer1 {
					So(g.Player1.Score, ShouldBeGreaterThanOrEqualTo, g.Player2.Score)
				} else {
					So(g.Player2.Score, ShouldBeGreaterThan, g.Player1.Score)
				}
			}
		})
	})

	Convey("Given a generator producing only invalid games", t, func() {
		games := seeder.NewGenerator(7, 0.5, 1).Games(200)

		Convey("Then every game is rejected by validation", func() {
			for _, g := range games {
				_, err := validation.Validate(g)
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			}
		})
	})
}

func TestVerification(t *testing.T) {
	Convey("Given leaderboard entries", t, func() {
		ordered := []model.LeaderboardEntry{
			{GameID: 1, Score: 300},
			{GameID: 2, Score: 200},
			{GameID: 3, Score: 200},
			{GameID: 1, Score: 100},
		}

		Convey("Then a ranked list verifies", func() {
			So(seeder.VerifyOrdering(ordered), ShouldBeNil)
			So(seeder.VerifyLimit(ordered, 4), ShouldBeNil)
		})

		Convey("Then a score inversion is caught", func() {
			bad := []model.LeaderboardEntry{{GameID: 1, Score: 100}, {GameID: 2, Score: 200}}
			So(errors.Is(seeder.VerifyOrdering(bad), seeder.ErrVerification), ShouldBeTrue)
		})

		Convey("Then a tie out of game order is caught", func() {
			bad := []model.LeaderboardEntry{{GameID: 5, Score: 100}, {GameID: 2, Score: 100}}
			So(seeder.VerifyOrdering(bad), ShouldNotBeNil)
		})

		Convey("Then an oversized list is caught", func() {
			So(seeder.VerifyLimit(ordered, 3), ShouldNotBeNil)
		})
	})

	Convey("Given stats snapshots", t, func() {
		before := model.LeaderboardStats{TotalGames: 2, Total1PGames: 1, Total2PGames: 1, HighestScore: 2000}
		after := model.LeaderboardStats{TotalGames: 5, Total1PGames: 3, Total2PGames: 2, HighestScore: 2000}

		So(seeder.VerifyTotals(before, after, 3), ShouldBeNil)
		So(errors.Is(seeder.VerifyTotals(before, after, 4), seeder.ErrVerification), ShouldBeTrue)
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given the default seeder config", t, func() {
		cfg := seeder.NewConfig()
		So(cfg.Validate(), ShouldBeNil)

		Convey("When values are out of range", func() {
			for _, mutate := range []func(*seeder.Config){
				func(c *seeder.Config) { c.NumGames = 0 },
				func(c *seeder.Config) { c.Workers = 0 },
				func(c *seeder.Config) { c.TopN = 101 },
				func(c *seeder.Config) { c.TwoPlayerRatio = 1.5 },
				func(c *seeder.Config) { c.InvalidRatio = -0.1 },
				func(c *seeder.Config) { c.BaseURL = "" },
			} {
				c := seeder.NewConfig()
				mutate(c)
				So(errors.Is(c.Validate(), seeder.ErrInvalidConfig), ShouldBeTrue)
			}
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a client against a live API", t, func() {
		srv := newTestServer(t)
		ctx := context.Background()
		client := seeder.NewClient(srv.URL+"/", time.Second)

		So(client.CheckHealth(ctx), ShouldBeNil)

		Convey("When a valid game is submitted", func() {
			rec, err := client.SubmitGame(ctx, model.NewGame{
				Mode:    "1P",
				Player1: &model.PlayerResult{Name: "Alice", Score: 1500, Lines: 15},
			})

			Convey("Then the stored record comes back and shows up in reads", func() {
				So(err, ShouldBeNil)
				So(rec.ID, ShouldEqual, int64(1))

				top, err := client.Leaderboard(ctx, "1P", 5)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 1)

				st, err := client.Stats(ctx)
				So(err, ShouldBeNil)
				So(st.TotalGames, ShouldEqual, 1)
			})
		})

		Convey("When an invalid game is submitted", func() {
			_, err := client.SubmitGame(ctx, model.NewGame{Mode: "2P", Player1: &model.PlayerResult{Name: "A"}})
			So(errors.Is(err, seeder.ErrRejected), ShouldBeTrue)
		})

		Convey("When the limit is out of range", func() {
			_, err := client.Leaderboard(ctx, "all", 1000)
			So(errors.Is(err, seeder.ErrUnexpectedStatus), ShouldBeTrue)
		})
	})

	Convey("Given an unhealthy endpoint", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := seeder.NewClient(srv.URL, time.Second).CheckHealth(context.Background())
		So(errors.Is(err, seeder.ErrUnhealthy), ShouldBeTrue)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a live API and a mixed workload", t, func() {
		srv := newTestServer(t)
		cfg := seeder.NewConfig()
		cfg.BaseURL = srv.URL
		cfg.NumGames = 120
		cfg.Workers = 6
		cfg.InvalidRatio = 0.2
		cfg.Seed = 99

		var out bytes.Buffer
		report, err := seeder.Run(context.Background(), cfg, &out)

		Convey("Then the run verifies and accounts for every game", func() {
			So(err, ShouldBeNil)
			So(report.Generated, ShouldEqual, 120)
			So(report.Submitted, ShouldEqual, 120)
			So(report.Accepted+report.Rejected, ShouldEqual, 120)
			So(report.Rejected, ShouldBeGreaterThan, 0)
			So(report.Failed, ShouldEqual, 0)
			So(report.After.TotalGames, ShouldEqual, report.Accepted)
			So(report.Top, ShouldHaveLength, cfg.TopN)
			So(out.String(), ShouldContainSubstring, "Seeding run")
			So(out.String(), ShouldContainSubstring, "Top 10")
		})

		Convey("And show renders the same data", func() {
			var shown bytes.Buffer
			err := seeder.Show(context.Background(), srv.URL, time.Second, "2P", 5, &shown)
			So(err, ShouldBeNil)
			So(shown.String(), ShouldContainSubstring, "Leaderboard (2P)")
			So(shown.String(), ShouldContainSubstring, "Stats")
		})
	})

	Convey("Given an unreachable service", t, func() {
		cfg := seeder.NewConfig()
		cfg.BaseURL = "http://127.0.0.1:1"
		cfg.Timeout = 200 * time.Millisecond

		_, err := seeder.Run(context.Background(), cfg, io.Discard)
		So(err, ShouldNotBeNil)
	})
}

func TestRender(t *testing.T) {
	Convey("Given entries and stats", t, func() {
		win, loss := true, false
		entries := []model.LeaderboardEntry{
			{GameID: 2, PlayerName: "Alice", Score: 2000, Lines: 20, Mode: model.ModeTwoPlayer, IsWinner: &win},
			{GameID: 2, PlayerName: "Bob", Score: 1800, Lines: 18, Mode: model.ModeTwoPlayer, IsWinner: &loss},
			{GameID: 1, PlayerName: "a-very-long-player-name-that-overflows", Score: 1500, Mode: model.ModeSinglePlayer},
		}

		table := seeder.RenderLeaderboard("Top", entries)
		So(table, ShouldContainSubstring, "Alice")
		So(table, ShouldContainSubstring, "loss")
		So(table, ShouldContainSubstring, "...")
		So(table, ShouldNotContainSubstring, "overflows")

		So(seeder.RenderLeaderboard("Empty", nil), ShouldContainSubstring, "No leaderboard entries found")
		So(seeder.RenderStats(model.LeaderboardStats{AverageScore: 1766.67}), ShouldContainSubstring, "1766.67")
	})
}
