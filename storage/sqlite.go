package storage

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// progressSlot is the single row holding the stage-resume pointer.
const progressSlot = 0

// SQLiteStore persists the stage-resume pointer.
type SQLiteStore struct {
	DB *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite db %s", path)
	}
	// one connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS progress (
		slot INTEGER PRIMARY KEY,
		stage_id INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create progress table")
	}
	log.Println("SQLite Persistence Initialized.")
	return &SQLiteStore{DB: db}, nil
}

// SaveStage stores the stage to resume from.
func (s *SQLiteStore) SaveStage(stageID int) error {
	query := `
	INSERT INTO progress (slot, stage_id, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(slot) DO UPDATE SET
		stage_id = excluded.stage_id,
		updated_at = CURRENT_TIMESTAMP;
	`
	if _, err := s.DB.Exec(query, progressSlot, stageID); err != nil {
		return errors.Wrapf(err, "save stage %d", stageID)
	}
	return nil
}

// LoadStage returns the saved stage, or 0 when nothing was saved yet.
func (s *SQLiteStore) LoadStage() (int, error) {
	row := s.DB.QueryRow("SELECT stage_id FROM progress WHERE slot = ?", progressSlot)
	var stageID int
	if err := row.Scan(&stageID); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, errors.Wrap(err, "load stage")
	}
	return stageID, nil
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
