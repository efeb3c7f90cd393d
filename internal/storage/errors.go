package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backing store could not be read or written
	ErrUnavailable = errors.New("storage unavailable")
	// ErrCorrupt means the stored blob exists but does not decode
	ErrCorrupt = errors.New("storage data is corrupt")
	// ErrEncoding means the collection could not be serialized
	ErrEncoding = errors.New("failed to encode records")
)

// Kind classifies a storage failure
type Kind int

const (
	KindUnavailable Kind = iota + 1
	KindCorrupt
	KindEncoding
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnavailable:
		return ErrUnavailable
	case KindCorrupt:
		return ErrCorrupt
	case KindEncoding:
		return ErrEncoding
	default:
		return nil
	}
}

// Error describes a failed storage operation.
// It matches ErrUnavailable, ErrCorrupt or ErrEncoding with errors.Is.
type Error struct {
	Kind Kind
	Op   string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Key, e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
