package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"github.com/xd009642/m-tree/metric"
	"github.com/xd009642/m-tree/mtree"
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./points.sqlite". For
// in-memory databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

const pointsSchema = `
CREATE TABLE IF NOT EXISTS points (
    id        TEXT PRIMARY KEY,
    embedding BLOB NOT NULL
);
`

// EnsureSchema creates the points table in the provided database if it does
// not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(pointsSchema)
	return err
}

// Record is one persisted point.
type Record struct {
	ID     string
	Vector []float32
}

// Store persists points in a SQLite database.
type Store struct {
	db *sql.DB
}

// New wraps db as a point store and ensures the schema exists.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Add inserts records in a single transaction. Record IDs must be non-empty
// and unique.
func (s *Store) Add(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points(id, embedding) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		if r.ID == "" {
			return fmt.Errorf("store: Record.ID must be set")
		}
		if _, err := stmt.ExecContext(ctx, r.ID, EncodeVector(r.Vector)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load returns every stored record in insertion order.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, embedding FROM points ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var blob []byte
		if err := rows.Scan(&r.ID, &blob); err != nil {
			return nil, err
		}
		if r.Vector, err = DecodeVector(blob); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes the record with the given id.
func (s *Store) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("store: Remove called with empty id")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM points WHERE id = ?`, id)
	return err
}

// BuildTree indexes the records into a fresh M-Tree keyed by record id under
// the Euclidean metric.
func BuildTree(recs []Record, opts ...mtree.Option) *mtree.Tree[*metric.Point, string, float32] {
	t := mtree.New[*metric.Point, string, float32](metric.Euclidean, opts...)
	for _, r := range recs {
		t.Insert(r.ID, metric.NewPoint(r.Vector...))
	}
	return t
}
