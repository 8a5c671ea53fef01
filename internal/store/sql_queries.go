package store

// Table names and the upsert suffixes squirrel cannot express.
const (
	tableProgress         = "progress"
	tableProgressBackups  = "progress_backups"
	tableProgressHistory  = "progress_history"
	tableProgressEmergency = "progress_emergency"
	tableSyncRecords      = "sync_records"

	upsertProgressSQLite = `ON CONFLICT (user_id) DO UPDATE SET
		snapshot = excluded.snapshot,
		version = excluded.version,
		last_modified = excluded.last_modified,
		updated_at = excluded.updated_at`

	upsertEmergencySQLite = `ON CONFLICT (user_id) DO UPDATE SET
		snapshot = excluded.snapshot,
		version = excluded.version,
		created_at = excluded.created_at`

	// keepNewestBackups keeps the newest N rows of one user; args: user_id, N.
	keepNewestBackups = `id NOT IN (SELECT id FROM progress_backups WHERE user_id = ? ORDER BY id DESC LIMIT ?)`
	keepNewestHistory = `id NOT IN (SELECT id FROM progress_history WHERE user_id = ? ORDER BY id DESC LIMIT ?)`
	keepNewestSyncs   = `id NOT IN (SELECT id FROM sync_records WHERE user_id = ? ORDER BY id DESC LIMIT ?)`

	// lockProgressRow serialises concurrent writers of one user on the server.
	lockProgressRow = `FOR UPDATE`
)

// syncRecordsKept is the number of sync records kept per user.
const syncRecordsKept = 20
