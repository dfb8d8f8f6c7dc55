package interfaces

import (
	"context"
	"io"

	domaintypes "liendesk/internal/domain/types"
)

// AuthGateway exchanges credentials for a bearer token.
type AuthGateway interface {
	Login(ctx context.Context, req domaintypes.LoginRequest) (domaintypes.AuthResponse, error)
	Signup(ctx context.Context, req domaintypes.SignupRequest) (domaintypes.AuthResponse, error)
}

// CatalogGateway serves master data.
type CatalogGateway interface {
	Countries(ctx context.Context) ([]domaintypes.Option, error)
	States(ctx context.Context, countryID string) ([]domaintypes.Option, error)
	ProjectTypes(ctx context.Context) ([]domaintypes.Option, error)
	ProjectRoles(ctx context.Context) ([]domaintypes.Option, error)
	CustomerTypes(ctx context.Context, req domaintypes.RoleCustomersRequest) ([]domaintypes.Option, error)
}

// DeadlineGateway calls the remote remedy/deadline calculation.
type DeadlineGateway interface {
	RemedyDates(ctx context.Context, req domaintypes.RemedyDatesRequest) ([]domaintypes.RemedyDateField, error)
	DeadlineInfo(ctx context.Context, req domaintypes.DeadlineRequest) ([]domaintypes.Deadline, error)
}

// ProjectGateway persists projects and server-side wizard drafts.
type ProjectGateway interface {
	ProjectInfo(ctx context.Context, id domaintypes.ProjectID) (domaintypes.Project, error)
	SaveProject(ctx context.Context, p domaintypes.Project) (domaintypes.Project, error)
	SaveWizardStep(ctx context.Context, req domaintypes.SaveStepRequest) (domaintypes.SaveStepResponse, error)
	DeleteWizardDraft(ctx context.Context, draftID string) error
}

// ContactGateway persists customers and project contacts.
type ContactGateway interface {
	ProjectContacts(ctx context.Context, id domaintypes.ProjectID) ([]domaintypes.Contact, error)
	SaveCustomerContact(ctx context.Context, c domaintypes.Contact) (domaintypes.Contact, error)
	SaveProjectContact(ctx context.Context, req domaintypes.SaveProjectContactRequest) (domaintypes.Contact, error)
}

// UploadFile is one part of a multipart document upload.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// DocumentGateway lists, uploads and deletes project documents.
type DocumentGateway interface {
	Documents(ctx context.Context, id domaintypes.ProjectID) ([]domaintypes.Document, error)
	UploadDocuments(ctx context.Context, id domaintypes.ProjectID, files []UploadFile) ([]domaintypes.Document, error)
	DeleteDocument(ctx context.Context, req domaintypes.DeleteDocumentRequest) error
}

// TaskGateway reads and creates project tasks.
type TaskGateway interface {
	TaskActions(ctx context.Context) ([]domaintypes.Option, error)
	TaskCount(ctx context.Context, id domaintypes.ProjectID) (domaintypes.TaskCount, error)
	Tasks(ctx context.Context, filter domaintypes.TaskFilter) ([]domaintypes.Task, error)
	Task(ctx context.Context, id domaintypes.EntityID) (domaintypes.Task, error)
	CreateTask(ctx context.Context, t domaintypes.Task) (domaintypes.Task, error)
}

// Gateway is the full remote backend surface.
type Gateway interface {
	AuthGateway
	CatalogGateway
	DeadlineGateway
	ProjectGateway
	ContactGateway
	DocumentGateway
	TaskGateway
}
