package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// SQLStore keeps one row per document in the documents table
type SQLStore struct {
	db     *sqlx.DB
	driver string
}

// NewSQLStore wraps an open database. driver selects placeholder style and
// migrations.
func NewSQLStore(db *sqlx.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Open connects to a postgres or sqlite database
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, errors.Newf("unsupported store driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}

	if driver == DriverSQLite {
		// one connection keeps :memory: databases alive and avoids lock contention
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s database", driver)
	}

	return NewSQLStore(db, driver), nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for migrations
func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

const (
	existsQuery = `SELECT COUNT(1) FROM documents WHERE collection = ? AND natural_key = ?`

	upsertQuery = `INSERT INTO documents (collection, natural_key, document)
VALUES (?, ?, ?)
ON CONFLICT (collection, natural_key)
DO UPDATE SET
    document = excluded.document,
    updated_at = CURRENT_TIMESTAMP`

	countQuery = `SELECT COUNT(1) FROM documents WHERE collection = ?`
)

// Upsert writes record under naturalKey in one transaction
func (s *SQLStore) Upsert(ctx context.Context, collection string, naturalKey, record models.Record) (UpsertResult, error) {
	key, err := CanonicalKey(naturalKey)
	if err != nil {
		return 0, err
	}
	doc, err := encodeDocument(record)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin tx upsert document")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var n int
	if err := tx.GetContext(ctx, &n, s.db.Rebind(existsQuery), collection, key); err != nil {
		return 0, errors.Wrapf(err, "check document collection=%s key=%s", collection, key)
	}

	if _, err := tx.ExecContext(ctx, s.db.Rebind(upsertQuery), collection, key, doc); err != nil {
		return 0, errors.Wrapf(err, "upsert document collection=%s key=%s", collection, key)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit upsert document tx")
	}

	if n > 0 {
		return Replaced, nil
	}
	return Inserted, nil
}

// Count returns the number of documents in collection
func (s *SQLStore) Count(ctx context.Context, collection string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(countQuery), collection); err != nil {
		return 0, errors.Wrapf(err, "count documents collection=%s", collection)
	}
	return n, nil
}
