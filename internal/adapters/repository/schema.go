package repository

// gamesTablePostgres and gamesTableSQLite differ only in id and timestamp types.
const gamesTablePostgres = `
CREATE TABLE IF NOT EXISTS games (
	id            BIGSERIAL PRIMARY KEY,
	mode          VARCHAR(2)   NOT NULL,
	player1_name  VARCHAR(100) NOT NULL,
	player1_score INTEGER      NOT NULL,
	player1_lines INTEGER      NOT NULL,
	player2_name  VARCHAR(100),
	player2_score INTEGER,
	player2_lines INTEGER,
	winner        SMALLINT,
	created_at    TIMESTAMPTZ  NOT NULL,` + gamesChecks + `
)`

const gamesTableSQLite = `
CREATE TABLE IF NOT EXISTS games (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	mode          TEXT    NOT NULL,
	player1_name  TEXT    NOT NULL,
	player1_score INTEGER NOT NULL,
	player1_lines INTEGER NOT NULL,
	player2_name  TEXT,
	player2_score INTEGER,
	player2_lines INTEGER,
	winner        INTEGER,
	created_at    TIMESTAMP NOT NULL,` + gamesChecks + `
)`

const gamesChecks = `
	CHECK (mode IN ('1P', '2P')),
	CHECK (player1_score >= 0 AND player1_lines >= 0),
	CHECK (player2_score IS NULL OR player2_score >= 0),
	CHECK (player2_lines IS NULL OR player2_lines >= 0),
	CHECK (winner IS NULL OR winner IN (1, 2)),
	CHECK (
		(mode = '1P' AND player2_name IS NULL AND player2_score IS NULL AND player2_lines IS NULL AND winner IS NULL)
		OR (mode = '2P' AND player2_name IS NOT NULL AND player2_score IS NOT NULL AND player2_lines IS NOT NULL)
	)`

// gamesIndexes back filter-by-mode and order-by-score reads for both slots.
var gamesIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_mode_created ON games (mode, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_player1_score_mode ON games (player1_score, mode, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_player2_score_mode ON games (player2_score, mode, created_at)`,
}

func schemaFor(driver string) []string {
	table := gamesTableSQLite
	if driver == DriverPostgres {
		table = gamesTablePostgres
	}
	return append([]string{table}, gamesIndexes...)
}
