// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (the Index) with an append-only
// log structure on disk to achieve high throughput. It is designed for
// applications requiring fast read and write operations, such as
// caching, session management, and real-time data processing, aiming
// to provide a simple, efficient, and reliable solution for embedded
// key-value storage in Go applications.
package ignite

import (
	"context"

	"ignitedb/internal/engine"
	"ignitedb/pkg/logger"
	"ignitedb/pkg/options"
)

// Instance is the primary entry point for interacting with the Ignite
// store, providing methods for setting, getting, removing, and
// eventually closing key-value pairs backed by a single directory on
// disk.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

// NewInstance creates and initializes a new Ignite DB instance rooted
// at dir, replaying any existing data found there.
func NewInstance(ctx context.Context, service, dir string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	eng, err := engine.New(&engine.Config{Dir: dir, Logger: log, Options: &defaultOpts})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// Set stores a key-value pair in the database. If the key already
// exists, its value is overwritten.
func (i *Instance) Set(ctx context.Context, key, value string) error {
	return i.engine.Set(key, value)
}

// Get retrieves the value associated with the given key. The second
// return value is false if the key has no live entry.
func (i *Instance) Get(ctx context.Context, key string) (string, bool, error) {
	return i.engine.Get(key)
}

// Remove deletes a key-value pair from the database, returning
// errors.ErrKeyNotFound if the key was never set or already removed.
func (i *Instance) Remove(ctx context.Context, key string) error {
	return i.engine.Remove(key)
}

// Close gracefully shuts down the Ignite DB instance, flushing any
// pending writes and releasing open file handles.
func (i *Instance) Close(ctx context.Context) error {
	return i.engine.Close()
}
