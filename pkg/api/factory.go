// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/ssargent/basekit/pkg/storage"
)

// DefaultStoreOpener opens pebble-backed blob stores
type DefaultStoreOpener struct{}

// NewStoreOpener creates a new store opener
func NewStoreOpener() StoreOpener {
	return &DefaultStoreOpener{}
}

// OpenStore opens a store in dataDir, or an in-memory one when it is empty
func (o *DefaultStoreOpener) OpenStore(dataDir string) (ClosableBlobStore, error) {
	var (
		store *storage.BlobStore
		err   error
	)
	if dataDir == "" {
		store, err = storage.NewMemBlobStore()
	} else {
		store, err = storage.NewBlobStore(dataDir)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer runs the API server with the given configuration
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	store BlobStore,
	config ServerConfig,
	logger *zap.Logger,
) error {
	return NewServer(store, config, NewMetrics(), logger).Run(ctx)
}
