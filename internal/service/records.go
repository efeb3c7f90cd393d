package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/xolan/lifelog/internal/filter"
	"github.com/xolan/lifelog/internal/logging"
	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/storage"
)

// Common errors for the record service
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrBusy           = errors.New("another write is still in progress")
)

// Inspector reports on the health of stored data
type Inspector interface {
	Inspect(ctx context.Context) (storage.Health, error)
}

// RecordService creates, lists, edits and deletes records
type RecordService struct {
	store     storage.Store
	inspector Inspector
	loc       *time.Location
	now       func() time.Time
	ids       *record.IDSource
	log       logging.Logger
	writing   atomic.Bool
}

// NewRecordService creates a new RecordService.
// inspector may be nil when the store cannot be inspected.
func NewRecordService(store storage.Store, inspector Inspector, loc *time.Location, now func() time.Time, log logging.Logger) *RecordService {
	return &RecordService{
		store:     store,
		inspector: inspector,
		loc:       loc,
		now:       now,
		ids:       &record.IDSource{},
		log:       log.With("component", "records"),
	}
}

// beginWrite marks a write as pending; the returned func ends it.
// A second write while one is pending fails with ErrBusy.
func (s *RecordService) beginWrite() (func(), error) {
	if !s.writing.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return func() { s.writing.Store(false) }, nil
}

// NewDraft returns an empty form prefilled with the current date and time
func (s *RecordService) NewDraft() record.Draft {
	return record.NewDraft(s.now().In(s.loc))
}

// Create validates d and stores it as a new record
func (s *RecordService) Create(ctx context.Context, d record.Draft) (record.Record, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return record.Record{}, err
	}

	done, err := s.beginWrite()
	if err != nil {
		return record.Record{}, err
	}
	defer done()

	now := s.now()
	r := record.New(d, s.ids.Next(now), now)
	if err := s.store.Upsert(ctx, r); err != nil {
		return record.Record{}, fmt.Errorf("failed to save record: %w", err)
	}

	s.log.Info(ctx, "record created", "id", r.ID, "category", r.Category)
	return r, nil
}

// All returns every stored record in storage order
func (s *RecordService) All(ctx context.Context) []record.Record {
	return s.store.ReadAll(ctx)
}

// List returns the records matching f, newest date and time first
func (s *RecordService) List(ctx context.Context, f *filter.Filter) ListResult {
	all := s.store.ReadAll(ctx)
	matched := filter.Apply(all, f)

	out := make([]record.Record, len(matched))
	copy(out, matched)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})

	return ListResult{Records: out, Total: len(all)}
}

// Recent returns the n most recently created records
func (s *RecordService) Recent(ctx context.Context, n int) []record.Record {
	return record.Recent(s.store.ReadAll(ctx), n, s.loc)
}

// Get returns the record with id
func (s *RecordService) Get(ctx context.Context, id string) (record.Record, error) {
	for _, r := range s.store.ReadAll(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return record.Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// Replace overwrites every editable field of the record with id.
// ID and creation time are kept.
func (s *RecordService) Replace(ctx context.Context, id string, d record.Draft) (record.Record, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return record.Record{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return record.Record{}, err
	}

	done, err := s.beginWrite()
	if err != nil {
		return record.Record{}, err
	}
	defer done()

	updated := existing.Replace(d)
	if err := s.store.Upsert(ctx, updated); err != nil {
		return record.Record{}, fmt.Errorf("failed to save record: %w", err)
	}

	s.log.Info(ctx, "record updated", "id", id)
	return updated, nil
}

// Delete removes the record with id and returns it
func (s *RecordService) Delete(ctx context.Context, id string) (record.Record, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return record.Record{}, err
	}

	done, err := s.beginWrite()
	if err != nil {
		return record.Record{}, err
	}
	defer done()

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return record.Record{}, fmt.Errorf("failed to delete record: %w", err)
	}

	s.log.Info(ctx, "record deleted", "id", id)
	return existing, nil
}

// Clear removes every record and returns how many there were
func (s *RecordService) Clear(ctx context.Context) (int, error) {
	count := len(s.store.ReadAll(ctx))

	done, err := s.beginWrite()
	if err != nil {
		return 0, err
	}
	defer done()

	if err := s.store.ClearAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear records: %w", err)
	}

	s.log.Warn(ctx, "all records cleared", "count", count)
	return count, nil
}

// Health inspects the stored data
func (s *RecordService) Health(ctx context.Context) (storage.Health, error) {
	if s.inspector == nil {
		return storage.Health{}, errors.New("storage inspection is not supported")
	}
	return s.inspector.Inspect(ctx)
}
