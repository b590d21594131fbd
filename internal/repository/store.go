package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// Store abstracts a durable string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Options selects and configures a Store backend.
type Options struct {
	Driver string
	// Path is the file used by the file, bolt and sqlite drivers.
	Path string
	// DSN is the Postgres connection string.
	DSN string
	// Quota caps the size of a single value in bytes. Zero disables it.
	Quota int
}

// Open builds the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverFile:
		store, err = NewFileStore(opts.Path)
	case DriverBolt:
		store, err = OpenBolt(opts.Path)
	case DriverSQLite:
		store, err = OpenSQLite(ctx, opts.Path)
	case DriverPostgres:
		store, err = NewPostgresStore(ctx, opts.DSN)
	case DriverMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	if opts.Quota > 0 {
		store = WithQuota(store, opts.Quota)
	}
	return store, nil
}
