package api

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/basekit/pkg/codec"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EncodeResponse is returned by the encode endpoint
type EncodeResponse struct {
	Encoding string `json:"encoding"`
	Text     string `json:"text"`
	Bytes    int    `json:"bytes"`
}

// PackRequest is the body of the pack endpoint
type PackRequest struct {
	Value uint64 `json:"value"`
}

// PackResponse describes a packed or unpacked integer
type PackResponse struct {
	Order string `json:"order"`
	Bits  int    `json:"bits"`
	Value uint64 `json:"value"`
	Hex   string `json:"hex"`
}

// BlobResponse describes a stored blob
type BlobResponse struct {
	ID        string    `json:"id"`
	Encoding  string    `json:"encoding,omitempty"`
	Text      string    `json:"text,omitempty"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind         string
	Port         int
	APIKey       string // Empty disables authentication
	MaxBlobBytes int    // Upper bound on request bodies; 0 means no limit
}

// BlobStore defines the storage operations the server needs
type BlobStore interface {
	Put(ctx context.Context, encoding string, value []byte) (ksuid.KSUID, error)
	Get(ctx context.Context, id ksuid.KSUID) (*codec.Record, error)
	Delete(ctx context.Context, id ksuid.KSUID) error
}
