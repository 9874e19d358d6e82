// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"go.uber.org/zap"
)

// StoreOpener opens the blob store backing the server
type StoreOpener interface {
	// OpenStore opens a store in dataDir. An empty dataDir means in-memory.
	OpenStore(dataDir string) (ClosableBlobStore, error)
}

// ClosableBlobStore is a BlobStore that owns resources
type ClosableBlobStore interface {
	BlobStore
	Close() error
}

// ServerStarter defines the interface for running the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context, store BlobStore, config ServerConfig, logger *zap.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
