package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"liendesk/internal/domain"
)

const sessionFilename = "session.json.enc"

// SessionFileStore persists the authenticated session, encrypted with a
// key derived from the user's passphrase.
type SessionFileStore struct {
	path string
	kdf  kdfParams
	mu   sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{path: filepath.Join(dir, sessionFilename), kdf: defaultKDF()}
}

// SaveSession writes the encrypted session to disk.
func (s *SessionFileStore) SaveSession(passphrase string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ct, err := seal(passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(s.path, ct, 0o600)
}

// LoadSession reads and decrypts the session. ok is false when the user
// has never logged in (or has logged out).
func (s *SessionFileStore) LoadSession(passphrase string) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil || b == nil {
		return domain.Session{}, false, err
	}
	pt, err := open(passphrase, b)
	if err != nil {
		return domain.Session{}, false, err
	}
	var sess domain.Session
	if err := json.Unmarshal(pt, &sess); err != nil {
		return domain.Session{}, false, err
	}
	return sess, true, nil
}

// ClearSession deletes the session file.
func (s *SessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path)
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
