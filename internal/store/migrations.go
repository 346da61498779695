package store

type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations run in order; append only.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create debug runs",
		SQL: `
			CREATE TABLE debug_runs (
				id          TEXT PRIMARY KEY,
				query       TEXT NOT NULL,
				response    TEXT NOT NULL DEFAULT '',
				model       TEXT NOT NULL DEFAULT '',
				agent       TEXT NOT NULL DEFAULT '',
				error       TEXT NOT NULL DEFAULT '',
				duration_ms INTEGER NOT NULL DEFAULT 0,
				created_at  TEXT NOT NULL
			);

			CREATE INDEX idx_debug_runs_created ON debug_runs (created_at);
		`,
	},
	{
		Version: 2,
		Name:    "track session and event count",
		SQL: `
			ALTER TABLE debug_runs ADD COLUMN session_id TEXT NOT NULL DEFAULT '';
			ALTER TABLE debug_runs ADD COLUMN events INTEGER NOT NULL DEFAULT 0;
		`,
	},
}
