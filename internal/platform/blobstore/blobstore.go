// Package blobstore stores uploaded audio recordings for consultation
// transcription. It defines the Store interface, a local-disk implementation
// used by the server, and an in-memory implementation for tests.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBlobNotFound    = errors.New("blob not found")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrMissingFileName = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed audio upload size in bytes (25 MB).
const MaxFileSize = 25 * 1024 * 1024

// AllowedContentTypes lists the audio MIME types accepted for transcription.
var AllowedContentTypes = map[string]bool{
	"audio/ogg":       true,
	"audio/opus":      true,
	"audio/mpeg":      true,
	"audio/mp4":       true,
	"audio/wav":       true,
	"audio/x-wav":     true,
	"audio/webm":      true,
	"audio/aac":       true,
	"application/ogg": true,
}

// BlobMetadata describes a stored audio file.
type BlobMetadata struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store defines the contract for audio storage backends.
type Store interface {
	Save(ctx context.Context, meta BlobMetadata, content io.Reader) (*BlobMetadata, error)
	Open(ctx context.Context, id string) (io.ReadCloser, *BlobMetadata, error)
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Local-disk implementation
// ---------------------------------------------------------------------------

// DiskStore writes audio files under a base directory, one file per blob,
// named by the blob ID plus the original extension.
type DiskStore struct {
	dir string

	mu   sync.RWMutex
	meta map[string]BlobMetadata
}

// NewDiskStore creates the base directory if needed and returns a DiskStore.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &DiskStore{
		dir:  dir,
		meta: make(map[string]BlobMetadata),
	}, nil
}

// Save validates inputs, writes the content to disk, and records metadata.
func (s *DiskStore) Save(_ context.Context, meta BlobMetadata, content io.Reader) (*BlobMetadata, error) {
	if meta.FileName == "" {
		return nil, ErrMissingFileName
	}

	meta.ID = uuid.New().String()
	meta.CreatedAt = time.Now().UTC()

	path := s.path(meta.ID, meta.FileName)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(content, MaxFileSize+1))
	closeErr := f.Close()
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if closeErr != nil {
		os.Remove(path)
		return nil, fmt.Errorf("closing file: %w", closeErr)
	}
	if n > MaxFileSize {
		os.Remove(path)
		return nil, ErrFileTooLarge
	}
	meta.Size = n

	s.mu.Lock()
	s.meta[meta.ID] = meta
	s.mu.Unlock()

	out := meta
	return &out, nil
}

// Open returns the audio content and its metadata.
func (s *DiskStore) Open(_ context.Context, id string) (io.ReadCloser, *BlobMetadata, error) {
	s.mu.RLock()
	meta, ok := s.meta[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrBlobNotFound
	}

	f, err := os.Open(s.path(meta.ID, meta.FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrBlobNotFound
		}
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}

	m := meta
	return f, &m, nil
}

// Delete removes the audio file and its metadata.
func (s *DiskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	meta, ok := s.meta[id]
	if ok {
		delete(s.meta, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrBlobNotFound
	}
	if err := os.Remove(s.path(meta.ID, meta.FileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

func (s *DiskStore) path(id, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return filepath.Join(s.dir, id+ext)
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

type storedBlob struct {
	metadata BlobMetadata
	content  []byte
}

// InMemoryStore is a thread-safe, in-memory Store for tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]*storedBlob
}

// NewInMemoryStore returns a ready-to-use InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		blobs: make(map[string]*storedBlob),
	}
}

func (s *InMemoryStore) Save(_ context.Context, meta BlobMetadata, content io.Reader) (*BlobMetadata, error) {
	if meta.FileName == "" {
		return nil, ErrMissingFileName
	}

	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	meta.ID = uuid.New().String()
	meta.Size = int64(len(data))
	meta.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.blobs[meta.ID] = &storedBlob{metadata: meta, content: data}
	s.mu.Unlock()

	out := meta
	return &out, nil
}

func (s *InMemoryStore) Open(_ context.Context, id string) (io.ReadCloser, *BlobMetadata, error) {
	s.mu.RLock()
	blob, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, ErrBlobNotFound
	}

	meta := blob.metadata
	return io.NopCloser(bytes.NewReader(blob.content)), &meta, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[id]; !ok {
		return ErrBlobNotFound
	}
	delete(s.blobs, id)
	return nil
}
