package interfaces

import (
	"context"

	domaintypes "liendesk/internal/domain/types"
)

// AuthService logs users in and out and hands out the current session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (domaintypes.Session, error)
	Signup(ctx context.Context, req domaintypes.SignupRequest) (domaintypes.Session, error)
	Logout() error
	Current() (domaintypes.Session, error)
}

// DeadlineService fetches remedy deadlines for a set of inputs.
type DeadlineService interface {
	Calculate(ctx context.Context, req domaintypes.DeadlineRequest) ([]domaintypes.Deadline, error)
	RequiredDates(ctx context.Context, req domaintypes.RemedyDatesRequest) ([]domaintypes.RemedyDateField, error)
}

// DocumentService stages local files and uploads them.
type DocumentService interface {
	Stage(paths ...string) (accepted []domaintypes.PendingFile, rejected []error)
	Upload(ctx context.Context, id domaintypes.ProjectID, files []domaintypes.PendingFile) ([]domaintypes.Document, error)
}

// SubmissionService persists a finished draft through the gateway. The
// returned draft reflects what was persisted, including on failure; its
// ProjectID is set once the project is saved.
type SubmissionService interface {
	Submit(ctx context.Context, draft domaintypes.Draft) (domaintypes.Draft, error)
}
