// Package storage defines the key-value persistence boundary. Every key holds
// one whole JSON document and every Put replaces the previous value.
package storage

import "errors"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// ErrNotLoaded is returned when a Provider is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// NotInitialized is the error returned by Load when the backing resource
// does not exist yet.
func NotInitialized() error {
	return errors.New("storage not initialized, run 'codelit init' first")
}
