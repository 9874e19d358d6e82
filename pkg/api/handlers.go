package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/ssargent/basekit/pkg/base16"
	"github.com/ssargent/basekit/pkg/byteorder"
	"github.com/ssargent/basekit/pkg/codec"
	"github.com/ssargent/basekit/pkg/storage"
)

// Server holds the API server state
type Server struct {
	store   BlobStore
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(store BlobStore, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleEncode renders the raw request body in the named encoding
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCodec(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	text := c.EncodeToString(body)
	s.recordCodec(c.Name(), "encode", true, len(body))
	sendSuccess(w, EncodeResponse{
		Encoding: c.Name(),
		Text:     text,
		Bytes:    len(body),
	})
}

// handleDecode decodes the text body and returns the raw bytes
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCodec(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	data, err := c.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		s.recordCodec(c.Name(), "decode", false, 0)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.recordCodec(c.Name(), "decode", true, len(data))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handlePack serializes an integer with the requested byte order and width
func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	order, bits, ok := s.parseLayout(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req PackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		sendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	b, err := byteorder.Pack(order, bits, req.Value)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendSuccess(w, PackResponse{
		Order: order.String(),
		Bits:  bits,
		Value: req.Value,
		Hex:   base16.EncodeToString(b),
	})
}

// handleUnpack reads an integer from a hex body
func (s *Server) handleUnpack(w http.ResponseWriter, r *http.Request) {
	order, bits, ok := s.parseLayout(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	b, err := base16.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(b)*8 != bits {
		sendError(w, fmt.Sprintf("Expected %d bytes for uint%d, got %d", bits/8, bits, len(b)), http.StatusBadRequest)
		return
	}

	v, err := byteorder.Unpack(order, b)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sendSuccess(w, PackResponse{
		Order: order.String(),
		Bits:  bits,
		Value: v,
		Hex:   base16.EncodeToString(b),
	})
}

// handlePutBlob decodes the body and stores the raw bytes
func (s *Server) handlePutBlob(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookupCodec(w, r)
	if !ok {
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	data, err := c.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		s.recordCodec(c.Name(), "decode", false, 0)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.recordCodec(c.Name(), "decode", true, len(data))

	id, err := s.store.Put(r.Context(), c.Name(), data)
	if err != nil {
		s.recordBlob("put", false)
		s.logger.Error("failed to store blob", zap.Error(err))
		sendError(w, "Failed to store blob", http.StatusInternalServerError)
		return
	}
	s.recordBlob("put", true)

	sendSuccess(w, BlobResponse{ID: id.String(), Encoding: c.Name(), Size: len(data)})
}

// handleGetBlob returns a stored blob, re-encoded on request
func (s *Server) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	record, err := s.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.recordBlob("get", false)
		sendError(w, "Blob not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.recordBlob("get", false)
		s.logger.Error("failed to load blob", zap.Stringer("id", id), zap.Error(err))
		sendError(w, "Failed to load blob", http.StatusInternalServerError)
		return
	}
	s.recordBlob("get", true)

	name := r.URL.Query().Get("encoding")
	if name == "" {
		name = string(record.Encoding)
	}
	c, err := codec.Lookup(name)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.recordCodec(c.Name(), "encode", true, len(record.Value))

	sendSuccess(w, BlobResponse{
		ID:        id.String(),
		Encoding:  c.Name(),
		Text:      c.EncodeToString(record.Value),
		Size:      len(record.Value),
		CreatedAt: record.Time().UTC(),
	})
}

func (s *Server) handleDeleteBlob(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.recordBlob("delete", false)
		sendError(w, "Blob not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.recordBlob("delete", false)
		s.logger.Error("failed to delete blob", zap.Stringer("id", id), zap.Error(err))
		sendError(w, "Failed to delete blob", http.StatusInternalServerError)
		return
	}
	s.recordBlob("delete", true)

	sendSuccess(w, map[string]string{"id": id.String(), "status": "deleted"})
}

func (s *Server) lookupCodec(w http.ResponseWriter, r *http.Request) (codec.TextCodec, bool) {
	c, err := codec.Lookup(chi.URLParam(r, "encoding"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return c, true
}

func (s *Server) parseLayout(w http.ResponseWriter, r *http.Request) (byteorder.ByteOrder, int, bool) {
	order, err := byteorder.Parse(chi.URLParam(r, "order"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return nil, 0, false
	}
	bits, err := strconv.Atoi(chi.URLParam(r, "bits"))
	if err == nil {
		_, err = byteorder.Sizeof(bits)
	}
	if err != nil {
		sendError(w, "Bits must be 16, 32 or 64", http.StatusBadRequest)
		return nil, 0, false
	}
	return order, bits, true
}

// readBody reads the request body, enforcing MaxBlobBytes
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	reader := io.Reader(r.Body)
	if s.config.MaxBlobBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, int64(s.config.MaxBlobBytes))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func parseID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid blob id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func (s *Server) recordCodec(name, operation string, success bool, n int) {
	s.metrics.RecordCodecOperation(name, operation, success, n)
}

func (s *Server) recordBlob(operation string, success bool) {
	s.metrics.RecordBlobOperation(operation, success)
}
