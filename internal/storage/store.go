// Package storage persists the record collection as one JSON blob under a
// single key of a kv.Backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/xolan/lifelog/internal/kv"
	"github.com/xolan/lifelog/internal/record"
)

// StorageKey is the key that holds the serialized record collection
const StorageKey = "n_app_records"

// Store is the durable record collection.
type Store interface {
	// ReadAll returns every record in storage order. It never fails: an
	// absent, unreadable or malformed blob reads as an empty collection.
	ReadAll(ctx context.Context) []record.Record
	// Upsert replaces the record with the same ID in place, or appends it.
	// Writes fail without touching the blob when the backend cannot be read.
	Upsert(ctx context.Context, r record.Record) error
	// DeleteByID removes the record with id. An unknown id is not an error.
	DeleteByID(ctx context.Context, id string) error
	// ClearAll removes the whole collection.
	ClearAll(ctx context.Context) error
}

// Diagnostics receives read failures that ReadAll degrades to an empty result.
// The error is always a *Error.
type Diagnostics func(ctx context.Context, err error)

// Option configures a BlobStore
type Option func(*BlobStore)

// WithDiagnostics sets the callback for degraded reads
func WithDiagnostics(fn Diagnostics) Option {
	return func(s *BlobStore) {
		s.diag = fn
	}
}

// WithKey overrides StorageKey
func WithKey(key string) Option {
	return func(s *BlobStore) {
		if key != "" {
			s.key = key
		}
	}
}

// BlobStore implements Store over a kv.Backend.
// Concurrent writers are not coordinated: the last Set wins.
type BlobStore struct {
	backend kv.Backend
	key     string
	diag    Diagnostics
}

// NewBlobStore returns a store that keeps its collection in backend
func NewBlobStore(backend kv.Backend, opts ...Option) *BlobStore {
	s := &BlobStore{
		backend: backend,
		key:     StorageKey,
		diag:    func(context.Context, error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the key the collection is stored under
func (s *BlobStore) Key() string {
	return s.key
}

func (s *BlobStore) ReadAll(ctx context.Context) []record.Record {
	records, err := s.load(ctx)
	if err != nil {
		s.diag(ctx, err)
		return []record.Record{}
	}
	return records
}

func (s *BlobStore) Upsert(ctx context.Context, r record.Record) error {
	records, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].ID == r.ID {
			records[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, r)
	}

	return s.save(ctx, "upsert", records)
}

func (s *BlobStore) DeleteByID(ctx context.Context, id string) error {
	records, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}

	kept := make([]record.Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	return s.save(ctx, "delete", kept)
}

func (s *BlobStore) ClearAll(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return &Error{Kind: KindUnavailable, Op: "clear", Key: s.key, Err: err}
	}
	return nil
}

// loadForWrite reads the collection a write starts from. A backend that
// cannot be read aborts the write; a corrupt blob is reported and then
// replaced.
func (s *BlobStore) loadForWrite(ctx context.Context) ([]record.Record, error) {
	records, err := s.load(ctx)
	if err == nil {
		return records, nil
	}
	var serr *Error
	if errors.As(err, &serr) && serr.Kind == KindCorrupt {
		s.diag(ctx, err)
		return []record.Record{}, nil
	}
	return nil, err
}

// load decodes the blob; a missing key is an empty collection
func (s *BlobStore) load(ctx context.Context) ([]record.Record, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Op: "read", Key: s.key, Err: err}
	}
	if len(data) == 0 {
		return []record.Record{}, nil
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &Error{Kind: KindCorrupt, Op: "read", Key: s.key, Err: err}
	}
	if records == nil {
		records = []record.Record{}
	}
	return records, nil
}

func (s *BlobStore) save(ctx context.Context, op string, records []record.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return &Error{Kind: KindEncoding, Op: op, Key: s.key, Err: err}
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return &Error{Kind: KindUnavailable, Op: op, Key: s.key, Err: err}
	}
	return nil
}
