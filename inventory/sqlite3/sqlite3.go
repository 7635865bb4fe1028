package sqlite3

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/niclabs/ckabi/ck"
	"github.com/niclabs/ckabi/inventory"
)

// ErrNotFound is returned when no snapshot has the requested ID.
var ErrNotFound = errors.New("snapshot not found")

// DB is a wrapper over a sql.DB object, complying with the
// inventory.InfoStorage interface.
type DB struct {
	*sql.DB
}

func GetDatabase(path string) (inventory.InfoStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &DB{
		DB: db,
	}, nil
}

// Creates the tables if they don't exist yet.
func (db *DB) InitStorage() error {
	for _, stmt := range CreateStmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %v", err)
		}
	}
	return nil
}

func (db *DB) SaveSnapshot(snapshot *inventory.Snapshot) error {
	info := snapshot.Info
	if info == nil {
		return fmt.Errorf("snapshot %s has no info", snapshot.ID)
	}
	stmt, err := db.Prepare(InsertSnapshotQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()
	_, err = stmt.Exec(
		snapshot.ID,
		snapshot.Module,
		info.CryptokiVersion.String(),
		info.Manufacturer(),
		int64(info.Flags()),
		info.Description(),
		info.LibraryVersion.String(),
		append([]byte(nil), info.Raw()...),
		snapshot.RecordedAt.UnixNano(),
	)
	return err
}

func (db *DB) GetSnapshot(id string) (*inventory.Snapshot, error) {
	stmt, err := db.Prepare(GetSnapshotQuery)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	snapshot, err := scanSnapshot(stmt.QueryRow(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return snapshot, err
}

func (db *DB) GetSnapshots(module string) ([]*inventory.Snapshot, error) {
	var rows *sql.Rows
	var err error
	if module == "" {
		rows, err = db.Query(GetAllSnapshotsQuery)
	} else {
		rows, err = db.Query(GetModuleSnapshotsQuery, module)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	snapshots := make([]*inventory.Snapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

func (db *DB) CloseStorage() error {
	return db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (*inventory.Snapshot, error) {
	var id, module string
	var raw []byte
	var recordedAt int64
	if err := row.Scan(&id, &module, &raw, &recordedAt); err != nil {
		return nil, err
	}
	info, err := ck.UnmarshalInfo(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %v", id, err)
	}
	return &inventory.Snapshot{
		ID:         id,
		Module:     module,
		Info:       info,
		RecordedAt: time.Unix(0, recordedAt).UTC(),
	}, nil
}
