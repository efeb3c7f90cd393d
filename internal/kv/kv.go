// Package kv provides the key-value backends that hold serialized blobs.
// Every backend stores an opaque []byte per key; a Set replaces the whole value.
package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned by Get when the key holds no value
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys that cannot be stored safely
	ErrInvalidKey = errors.New("invalid key")
	// ErrUnknownDriver is returned by Open for an unsupported driver name
	ErrUnknownDriver = errors.New("unknown storage backend")
)

// Backend is a minimal blob store keyed by string
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Options selects and configures a backend
type Options struct {
	Driver string

	// file
	Dir string

	// redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// sqlite
	SQLitePath string
}

// Open creates the backend named by opts.Driver
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverFile, "":
		return NewFile(opts.Dir)
	case DriverRedis:
		return NewRedisFromAddr(opts.RedisAddr, opts.RedisPassword, opts.RedisDB), nil
	case DriverSQLite:
		return OpenSQLite(ctx, opts.SQLitePath)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
