package sqlite3

const CreateSnapshotTable = `
    CREATE TABLE IF NOT EXISTS snapshot (
        id                  TEXT PRIMARY KEY,
        module              TEXT NOT NULL,
        cryptoki_version    TEXT,
        manufacturer_id     TEXT,
        flags               INTEGER,
        library_description TEXT,
        library_version     TEXT,
        raw                 BLOB NOT NULL,
        recorded_at         INTEGER NOT NULL
    )`

const CreateSnapshotModuleIndex = `
    CREATE INDEX IF NOT EXISTS snapshot_module ON snapshot (module, recorded_at)`

const InsertSnapshotQuery = `
	INSERT INTO snapshot (id, module, cryptoki_version, manufacturer_id, flags, library_description, library_version, raw, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const GetSnapshotQuery = `
	SELECT id, module, raw, recorded_at
	FROM snapshot
	WHERE id = ?
`

const GetModuleSnapshotsQuery = `
	SELECT id, module, raw, recorded_at
	FROM snapshot
	WHERE module = ?
	ORDER BY recorded_at DESC
`

const GetAllSnapshotsQuery = `
	SELECT id, module, raw, recorded_at
	FROM snapshot
	ORDER BY recorded_at DESC
`

var CreateStmts = []string{CreateSnapshotTable, CreateSnapshotModuleIndex}
