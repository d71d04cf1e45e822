package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"   // postgres driver
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/okian/duelboard/internal/domain/model"
)

const (
	insertGameSQL = `INSERT INTO games
	(mode, player1_name, player1_score, player1_lines, player2_name, player2_score, player2_lines, winner, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	selectGamesSQL = `SELECT id, mode, player1_name, player1_score, player1_lines,
	player2_name, player2_score, player2_lines, winner, created_at FROM games`
)

// SQLStore is a Store on database/sql, backed by postgres or sqlite.
type SQLStore struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// OpenSQL connects to dsn with driver, verifies the connection and applies
// the schema.
func OpenSQL(ctx context.Context, driver, dsn string, opts ...Option) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	s, err := NewSQLStore(ctx, db, driver, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open handle and applies the schema.
func NewSQLStore(ctx context.Context, db *sql.DB, driver string, opts ...Option) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	for _, stmt := range schemaFor(driver) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	st := newSettings(opts)
	return &SQLStore{db: db, driver: driver, now: st.now}, nil
}

// Insert writes rec as a single row.
func (s *SQLStore) Insert(ctx context.Context, rec model.GameRecord) (out model.GameRecord, err error) {
	defer func(start time.Time) { observe(opInsert, start, err) }(time.Now())

	if err := rec.CheckInvariant(); err != nil {
		return model.GameRecord{}, err
	}

	rec = clone(rec)
	// postgres keeps microseconds
	rec.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	var p2Name sql.NullString
	var p2Score, p2Lines, winner sql.NullInt64
	if rec.Player2 != nil {
		p2Name = sql.NullString{String: rec.Player2.Name, Valid: true}
		p2Score = sql.NullInt64{Int64: int64(rec.Player2.Score), Valid: true}
		p2Lines = sql.NullInt64{Int64: int64(rec.Player2.Lines), Valid: true}
	}
	if rec.Winner != nil {
		winner = sql.NullInt64{Int64: int64(*rec.Winner), Valid: true}
	}

	row := s.db.QueryRowContext(ctx, s.rebind(insertGameSQL),
		string(rec.Mode), rec.Player1.Name, rec.Player1.Score, rec.Player1.Lines,
		p2Name, p2Score, p2Lines, winner, s.timeArg(rec.CreatedAt))
	if err := row.Scan(&rec.ID); err != nil {
		return model.GameRecord{}, model.NewStorageError(opInsert, err)
	}
	return rec, nil
}

// Scan reads matching rows in id order.
func (s *SQLStore) Scan(ctx context.Context, filter model.ModeFilter) (out []model.GameRecord, err error) {
	defer func(start time.Time) { observe(opScan, start, err) }(time.Now())

	query := selectGamesSQL
	var args []any
	if filter != model.FilterAll {
		query += " WHERE mode = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, model.NewStorageError(opScan, err)
	}
	defer rows.Close()

	out = []model.GameRecord{}
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, model.NewStorageError(opScan, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError(opScan, err)
	}
	return out, nil
}

// Ping checks the connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return model.NewStorageError(opPing, s.db.PingContext(ctx))
}

// Close closes the underlying handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func scanGame(rows *sql.Rows) (model.GameRecord, error) {
	var (
		rec              model.GameRecord
		mode             string
		p2Name           sql.NullString
		p2Score, p2Lines sql.NullInt64
		winner           sql.NullInt64
		created          timestamp
	)
	if err := rows.Scan(&rec.ID, &mode, &rec.Player1.Name, &rec.Player1.Score, &rec.Player1.Lines,
		&p2Name, &p2Score, &p2Lines, &winner, &created); err != nil {
		return model.GameRecord{}, err
	}
	rec.Mode = model.Mode(mode)
	if p2Name.Valid {
		rec.Player2 = &model.PlayerResult{Name: p2Name.String, Score: int(p2Score.Int64), Lines: int(p2Lines.Int64)}
	}
	if winner.Valid {
		w := int(winner.Int64)
		rec.Winner = &w
	}
	rec.CreatedAt = created.Time
	return rec, nil
}

// rebind rewrites ? placeholders into $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// timeArg formats created_at for the driver. sqlite keeps text timestamps.
func (s *SQLStore) timeArg(t time.Time) any {
	if s.driver == DriverSQLite {
		return t.Format(time.RFC3339Nano)
	}
	return t
}

// timestamp scans the created_at column from either driver.
type timestamp struct {
	time.Time
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v.UTC()
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case int64:
		ts.Time = time.Unix(v, 0).UTC()
	default:
		return fmt.Errorf("unsupported created_at type %T", src)
	}
	return nil
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable created_at %q", s)
}
