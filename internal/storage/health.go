package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xolan/lifelog/internal/kv"
	"github.com/xolan/lifelog/internal/record"
)

// ParseWarning describes one element of the stored array that is not a record
type ParseWarning struct {
	Index   int    // 0-based position in the stored array
	Content string // Raw JSON of the element
	Error   string
}

// Health is the result of inspecting the stored blob
type Health struct {
	Key       string
	Present   bool           // The key holds a value
	Bytes     int            // Size of the stored blob
	Elements  int            // Array elements found in the blob
	Records   int            // Elements that decode as records
	Corrupt   bool           // The blob as a whole will read as empty
	Problem   string         // Decode error of the whole blob, when corrupt
	Warnings  []ParseWarning // Elements that fail to decode
	Duplicate []string       // IDs that appear more than once
}

// Inspect examines the stored blob without modifying it.
// Only backend failures are returned as errors; decode problems are reported in Health.
func (s *BlobStore) Inspect(ctx context.Context) (Health, error) {
	h := Health{Key: s.key}

	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return h, nil
	}
	if err != nil {
		return h, &Error{Kind: KindUnavailable, Op: "inspect", Key: s.key, Err: err}
	}

	h.Present = true
	h.Bytes = len(data)
	if len(data) == 0 {
		return h, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		h.Corrupt = true
		h.Problem = err.Error()
		return h, nil
	}
	h.Elements = len(elements)

	seen := make(map[string]int)
	for i, raw := range elements {
		var r record.Record
		if err := json.Unmarshal(raw, &r); err != nil {
			h.Warnings = append(h.Warnings, ParseWarning{
				Index:   i,
				Content: string(raw),
				Error:   err.Error(),
			})
			continue
		}
		h.Records++
		seen[r.ID]++
		if seen[r.ID] == 2 {
			h.Duplicate = append(h.Duplicate, r.ID)
		}
	}

	// a single bad element makes the whole-array decode fail
	if len(h.Warnings) > 0 {
		h.Corrupt = true
		h.Problem = fmt.Sprintf("%d of %d elements are not valid records", len(h.Warnings), h.Elements)
	}
	return h, nil
}
