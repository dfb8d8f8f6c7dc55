package interfaces

import (
	"context"

	domaintypes "liendesk/internal/domain/types"
)

// DraftStore keeps the wizard resume snapshot under a fixed key. It is a
// resume mechanism, not a durable store: last write wins.
type DraftStore interface {
	SaveDraft(ctx context.Context, snapshot domaintypes.Snapshot) error
	// LoadDraft returns ok=false when nothing is stored. A snapshot that
	// cannot be decoded is reported as an error.
	LoadDraft(ctx context.Context) (snapshot domaintypes.Snapshot, ok bool, err error)
	ClearDraft(ctx context.Context) error
}

// SessionStore persists the authenticated session, protected by a passphrase.
type SessionStore interface {
	SaveSession(passphrase string, session domaintypes.Session) error
	LoadSession(passphrase string) (domaintypes.Session, bool, error)
	ClearSession() error
}
