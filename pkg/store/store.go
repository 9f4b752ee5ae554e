// Package store persists scraped records as documents keyed by collection and
// natural key.
package store

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

// UpsertResult tells whether an upsert created a document or replaced one
type UpsertResult int

const (
	Inserted UpsertResult = iota + 1
	Replaced
)

func (r UpsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Sink receives records from a run. Upserting the same natural key twice
// leaves one document holding the second record.
type Sink interface {
	Upsert(ctx context.Context, collection string, naturalKey, record models.Record) (UpsertResult, error)
}

// Driver names accepted by Open
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// CanonicalKey encodes a natural key as JSON with sorted field names, so equal
// keys always produce equal strings.
func CanonicalKey(naturalKey models.Record) (string, error) {
	if len(naturalKey) == 0 {
		return "", errors.New("empty natural key")
	}
	b, err := sonic.ConfigStd.Marshal(naturalKey)
	if err != nil {
		return "", errors.Wrap(err, "encode natural key")
	}
	return string(b), nil
}

func encodeDocument(record models.Record) (string, error) {
	b, err := sonic.ConfigStd.Marshal(record)
	if err != nil {
		return "", errors.Wrap(err, "encode document")
	}
	return string(b), nil
}
