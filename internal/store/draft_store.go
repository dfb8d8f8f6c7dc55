package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

// ErrCorruptDraft reports a stored snapshot that cannot be decoded.
var ErrCorruptDraft = errors.ErrCorruptDraft

// Draft store backends accepted by OpenDraftStore.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DraftOptions selects and configures a draft store backend.
type DraftOptions struct {
	Backend  string
	Dir      string        // file and sqlite backends
	RedisURL string        // redis backend
	TTL      time.Duration // redis backend; zero keeps drafts forever
	Account  string        // redis backend; namespaces the key per user
}

// DraftStore is a DraftStore that may hold a connection to release.
type DraftStore interface {
	domain.DraftStore
	Close() error
}

// OpenDraftStore returns the configured backend. Every backend stores the
// snapshot JSON under domain.DraftKey; the Redis key is suffixed with
// opts.Account.
func OpenDraftStore(ctx context.Context, opts DraftOptions) (DraftStore, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		return NewFileDraftStore(opts.Dir), nil
	case BackendSQLite:
		return OpenSQLiteDraftStore(ctx, filepath.Join(opts.Dir, "liendesk.db"))
	case BackendRedis:
		s, err := OpenRedisDraftStore(ctx, opts.RedisURL, opts.TTL)
		if err != nil {
			return nil, err
		}
		return s.ForAccount(opts.Account), nil
	case BackendMemory:
		return NewMemoryDraftStore(), nil
	}
	return nil, fmt.Errorf("unknown draft backend %q (want file, sqlite, redis or memory)", opts.Backend)
}

func encodeSnapshot(snap domain.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func decodeSnapshot(b []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptDraft, err)
	}
	return snap, nil
}

// -----------------------------------------------------------------------------
// File
// -----------------------------------------------------------------------------

// FileDraftStore keeps the snapshot in {dir}/drafts/<DraftKey>.json.
type FileDraftStore struct {
	path string
	mu   sync.Mutex
}

// NewFileDraftStore returns a FileDraftStore rooted at dir.
func NewFileDraftStore(dir string) *FileDraftStore {
	return &FileDraftStore{path: filepath.Join(dir, "drafts", domain.DraftKey+".json")}
}

// SaveDraft overwrites the stored snapshot.
func (s *FileDraftStore) SaveDraft(_ context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, snap, 0o600)
}

// LoadDraft reads the stored snapshot.
func (s *FileDraftStore) LoadDraft(context.Context) (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return domain.Snapshot{}, false, err
	}
	snap, err := decodeSnapshot(b)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

// ClearDraft removes the snapshot file.
func (s *FileDraftStore) ClearDraft(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path)
}

// Close is a no-op.
func (s *FileDraftStore) Close() error { return nil }

// -----------------------------------------------------------------------------
// Memory
// -----------------------------------------------------------------------------

// MemoryDraftStore keeps the encoded snapshot in memory. It backs editing
// sessions and tests.
type MemoryDraftStore struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryDraftStore returns an empty MemoryDraftStore.
func NewMemoryDraftStore() *MemoryDraftStore { return &MemoryDraftStore{} }

func (s *MemoryDraftStore) SaveDraft(_ context.Context, snap domain.Snapshot) error {
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) LoadDraft(context.Context) (domain.Snapshot, bool, error) {
	s.mu.Lock()
	raw := s.raw
	s.mu.Unlock()
	if raw == nil {
		return domain.Snapshot{}, false, nil
	}
	snap, err := decodeSnapshot(raw)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *MemoryDraftStore) ClearDraft(context.Context) error {
	s.mu.Lock()
	s.raw = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Close() error { return nil }

// Compile-time assertions that every backend implements the store contract.
var (
	_ DraftStore = (*FileDraftStore)(nil)
	_ DraftStore = (*MemoryDraftStore)(nil)
	_ DraftStore = (*SQLiteDraftStore)(nil)
	_ DraftStore = (*RedisDraftStore)(nil)
)
