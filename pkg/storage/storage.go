// Package storage persists decoded payloads in pebble, keyed by KSUID.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/basekit/pkg/codec"
)

// ErrNotFound is returned when no blob exists for an id.
var ErrNotFound = errors.New("blob not found")

var blobPrefix = []byte("blob/")

// BlobStore stores payloads framed as codec records.
type BlobStore struct {
	db    *pebble.DB
	codec *codec.RecordCodec
}

// NewBlobStore opens (or creates) a store in path.
func NewBlobStore(path string) (*BlobStore, error) {
	return open(path, &pebble.Options{})
}

// NewMemBlobStore opens a store backed by an in-memory filesystem.
func NewMemBlobStore() (*BlobStore, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(path string, opts *pebble.Options) (*BlobStore, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}
	return &BlobStore{db: db, codec: codec.NewRecordCodec()}, nil
}

// Put stores value, remembering the encoding it arrived in, and returns the
// new blob id.
func (s *BlobStore) Put(ctx context.Context, encoding string, value []byte) (ksuid.KSUID, error) {
	if err := ctx.Err(); err != nil {
		return ksuid.Nil, err
	}

	data, err := s.codec.Encode([]byte(encoding), value)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to frame blob: %w", err)
	}

	id := ksuid.New()
	if err := s.db.Set(blobKey(id), data, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to write blob: %w", err)
	}
	return id, nil
}

// Get loads and validates the blob with the given id.
func (s *BlobStore) Get(ctx context.Context, id ksuid.KSUID) (*codec.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, closer, err := s.db.Get(blobKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	// data is only valid until closer is closed.
	owned := append([]byte(nil), data...)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("failed to release blob: %w", err)
	}

	record, err := s.codec.Decode(owned)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob %s: %w", id, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("blob %s is corrupt: %w", id, err)
	}
	return record, nil
}

// Delete removes the blob with the given id. Corrupt blobs can be deleted.
func (s *BlobStore) Delete(ctx context.Context, id ksuid.KSUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := blobKey(id)
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("failed to release blob: %w", err)
	}

	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BlobStore) Close() error {
	return s.db.Close()
}

func blobKey(id ksuid.KSUID) []byte {
	return append(append([]byte(nil), blobPrefix...), id.Bytes()...)
}
