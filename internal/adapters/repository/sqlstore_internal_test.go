package repository

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSQLStore_Rebind(t *testing.T) {
	Convey("Given the SQL statements of the store", t, func() {
		pg := &SQLStore{driver: DriverPostgres}
		lite := &SQLStore{driver: DriverSQLite}

		cases := []struct {
			name  string
			query string
			want  string
		}{
			{
				name:  "insert",
				query: insertGameSQL,
				want:  "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id",
			},
			{
				name:  "filtered scan",
				query: selectGamesSQL + " WHERE mode = ? ORDER BY id ASC",
				want:  "FROM games WHERE mode = $1 ORDER BY id ASC",
			},
			{
				name:  "unfiltered scan",
				query: selectGamesSQL + " ORDER BY id ASC",
				want:  "FROM games ORDER BY id ASC",
			},
			{
				name:  "double digit placeholders",
				query: strings.Repeat("?,", 11) + "?",
				want:  "$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12",
			},
		}

		for _, tc := range cases {
			Convey("When rebinding the "+tc.name+" for postgres", func() {
				out := pg.rebind(tc.query)
				So(out, ShouldEndWith, tc.want)
				So(out, ShouldNotContainSubstring, "?")
			})

			Convey("When rebinding the "+tc.name+" for sqlite", func() {
				So(lite.rebind(tc.query), ShouldEqual, tc.query)
			})
		}
	})
}

func TestSQLStore_TimeArg(t *testing.T) {
	Convey("Given a created_at timestamp", t, func() {
		at := time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.UTC)

		Convey("When bound for postgres it stays a time.Time", func() {
			s := &SQLStore{driver: DriverPostgres}
			So(s.timeArg(at), ShouldEqual, at)
		})

		Convey("When bound for sqlite it is RFC 3339 text that scans back", func() {
			s := &SQLStore{driver: DriverSQLite}
			arg, ok := s.timeArg(at).(string)
			So(ok, ShouldBeTrue)
			So(arg, ShouldEqual, "2024-05-01T12:30:45.123456Z")

			var ts timestamp
			So(ts.Scan(arg), ShouldBeNil)
			So(ts.Time.Equal(at), ShouldBeTrue)
		})
	})
}

func TestTimestamp_Scan(t *testing.T) {
	Convey("Given created_at values as drivers return them", t, func() {
		want := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)

		Convey("Then a TIMESTAMPTZ value is normalised to UTC", func() {
			var ts timestamp
			So(ts.Scan(want.In(time.FixedZone("CEST", 2*3600))), ShouldBeNil)
			So(ts.Time, ShouldEqual, want)
			So(ts.Time.Location(), ShouldEqual, time.UTC)
		})

		Convey("Then text layouts parse", func() {
			for _, src := range []any{
				"2024-05-01T12:30:45Z",
				[]byte("2024-05-01 14:30:45+02:00"),
				"2024-05-01 12:30:45",
			} {
				var ts timestamp
				So(ts.Scan(src), ShouldBeNil)
				So(ts.Time.Equal(want), ShouldBeTrue)
			}
		})

		Convey("Then unix seconds parse", func() {
			var ts timestamp
			So(ts.Scan(want.Unix()), ShouldBeNil)
			So(ts.Time, ShouldEqual, want)
		})

		Convey("Then garbage is rejected", func() {
			var ts timestamp
			So(ts.Scan("yesterday"), ShouldNotBeNil)
			So(ts.Scan(3.5), ShouldNotBeNil)
		})
	})
}

func TestSchemaFor(t *testing.T) {
	Convey("Given the schema statements per driver", t, func() {
		pg := schemaFor(DriverPostgres)
		lite := schemaFor(DriverSQLite)

		Convey("Then postgres uses serial ids and zoned timestamps", func() {
			So(pg[0], ShouldContainSubstring, "BIGSERIAL")
			So(pg[0], ShouldContainSubstring, "TIMESTAMPTZ")
			So(pg, ShouldHaveLength, len(gamesIndexes)+1)
		})

		Convey("Then sqlite uses autoincrement ids", func() {
			So(lite[0], ShouldContainSubstring, "AUTOINCREMENT")
			So(lite[0], ShouldNotContainSubstring, "TIMESTAMPTZ")
		})
	})
}
