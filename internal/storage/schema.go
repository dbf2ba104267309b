package storage

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS openings (
	opening_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	family TEXT NOT NULL DEFAULT '',
	system TEXT NOT NULL DEFAULT '',
	variation TEXT NOT NULL DEFAULT '',
	eco TEXT NOT NULL DEFAULT '',
	fen TEXT NOT NULL DEFAULT '',
	mainline TEXT NOT NULL DEFAULT '',
	white_win REAL NOT NULL DEFAULT 0,
	draw REAL NOT NULL DEFAULT 0,
	black_win REAL NOT NULL DEFAULT 0,
	sample_size INTEGER NOT NULL DEFAULT 0,
	tier TEXT NOT NULL DEFAULT '',
	eval REAL,
	acceptance TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_openings_family ON openings(family);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	games INTEGER NOT NULL,
	analyzed INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	duplicates INTEGER NOT NULL,
	unprocessable INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS game_records (
	game_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	colour TEXT NOT NULL CHECK(colour IN ('white', 'black')),
	outcome TEXT NOT NULL CHECK(outcome IN ('win', 'draw', 'loss')),
	player_rating REAL,
	opponent_rating REAL,
	opening_id TEXT NOT NULL DEFAULT '',
	opening_name TEXT NOT NULL DEFAULT '',
	theory_depth INTEGER NOT NULL,
	transposition INTEGER NOT NULL,
	plies INTEGER NOT NULL,
	expected_score REAL,
	performance_rating REAL,
	baseline_win REAL,
	rating_error TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_game_records_run ON game_records(run_id);
CREATE INDEX IF NOT EXISTS idx_game_records_opening ON game_records(opening_id);

CREATE TABLE IF NOT EXISTS processed_games (
	game_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('analyzed', 'unprocessable')),
	error TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);
`
