package config_test

import (
	"testing"
	"time"

	"github.com/okian/duelboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, "memory")
			convey.So(cfg.DefaultLeaderboardLimit, convey.ShouldEqual, 10)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
			convey.So(cfg.ShutdownTimeout, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.CORSOrigins, convey.ShouldContain, "http://localhost:5173")
			convey.So(cfg.Env, convey.ShouldEqual, config.EnvDevelopment)
			convey.So(cfg.AllowedOrigins(), convey.ShouldContain, "http://127.0.0.1:5173")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_AllowedOrigins(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		cfg := config.New()
		cfg.CORSOrigins = []string{"https://example.com"}

		convey.Convey("When running in production", func() {
			cfg.Env = config.EnvProduction
			convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"https://example.com"})
		})

		convey.Convey("When running in development", func() {
			cfg.Env = config.EnvDevelopment
			origins := cfg.AllowedOrigins()

			convey.Convey("Then loopback dev origins are added", func() {
				convey.So(origins, convey.ShouldHaveLength, 4)
				convey.So(origins, convey.ShouldContain, "http://127.0.0.1:5173")
				convey.So(cfg.CORSOrigins, convey.ShouldHaveLength, 1)
			})
		})
	})
}
