package submission

import (
	"context"
	"fmt"
	"slices"

	"liendesk/internal/domain"
	"liendesk/internal/logging"
)

// Gateway is the part of the backend a submission touches.
type Gateway interface {
	domain.ProjectGateway
	domain.ContactGateway
	domain.DocumentGateway
	domain.TaskGateway
}

// Service turns a finished draft into a persisted project.
//
// The steps run in a fixed order and stop at the first failure:
//  1. Save the customer contact when it is new.
//  2. Save the project (create, or update when the draft edits one).
//  3. Save each new project contact.
//  4. Upload staged files and new documents.
//  5. Delete removed documents.
//  6. Create each new task.
//
// The backend has no delete endpoint for contacts or tasks, so removals of
// persisted contacts and tasks are logged and left for the web app.
type Service struct {
	gw     Gateway
	docs   domain.DocumentService
	logger *logging.Logger
}

// New returns a submission service.
func New(gw Gateway, docs domain.DocumentService, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Service{gw: gw, docs: docs, logger: logger.WithComponent("submission")}
}

// Submit runs the submission sequence. The returned draft records every
// step that reached the backend: saved contacts carry their server ids,
// uploaded files become documents and deleted ids are dropped. On failure
// it is the draft to retry with, so a retry repeats only what is left.
func (s *Service) Submit(ctx context.Context, d domain.Draft) (domain.Draft, error) {
	d = detach(d)

	customer := d.Contacts.Customer
	if customer.IsNew || (customer.ID == "" && !customer.IsZero()) {
		saved, err := s.gw.SaveCustomerContact(ctx, customer)
		if err != nil {
			return d, fmt.Errorf("save customer: %w", err)
		}
		saved.IsNew = false
		d.Contacts.Customer = saved
	}

	project, err := s.gw.SaveProject(ctx, domain.ProjectFromDraft(d))
	if err != nil {
		return d, fmt.Errorf("save project: %w", err)
	}
	editing := d.ProjectID != ""
	d.ProjectID = project.ID
	id := project.ID
	log := s.logger.With("project_id", id.String())
	log.Info("project saved", "editing", editing)

	for i, c := range d.Contacts.Contacts {
		if !c.IsNew {
			continue
		}
		c.ID = ""
		saved, err := s.gw.SaveProjectContact(ctx, domain.SaveProjectContactRequest{ProjectID: id, Contact: c})
		if err != nil {
			return d, fmt.Errorf("save contact %s: %w", c.Name(), err)
		}
		saved.IsNew = false
		d.Contacts.Contacts[i] = saved
	}

	uploads := append([]domain.PendingFile(nil), d.Upload.Files...)
	kept := make([]domain.Document, 0, len(d.Documents.Documents))
	for _, doc := range d.Documents.Documents {
		if !doc.IsNew {
			kept = append(kept, doc)
			continue
		}
		uploads = append(uploads, domain.PendingFile{ID: doc.ID, Name: doc.Name, Path: doc.Path, Size: doc.Size})
	}
	if len(uploads) > 0 {
		uploaded, err := s.docs.Upload(ctx, id, uploads)
		if err != nil {
			return d, fmt.Errorf("upload documents: %w", err)
		}
		d.Upload.Files = nil
		d.Documents.Documents = append(kept, uploaded...)
	}

	for len(d.Documents.RemovedDocumentIDs) > 0 {
		docID := d.Documents.RemovedDocumentIDs[0]
		if err := s.gw.DeleteDocument(ctx, domain.DeleteDocumentRequest{ProjectID: id, DocumentID: docID}); err != nil {
			return d, fmt.Errorf("delete document %s: %w", docID, err)
		}
		d.Documents.RemovedDocumentIDs = d.Documents.RemovedDocumentIDs[1:]
	}
	d.Documents.RemovedDocumentIDs = nil

	for i, t := range d.Tasks.Tasks {
		if !t.IsNew {
			continue
		}
		t.ID, t.IsNew, t.ProjectID = "", false, id
		created, err := s.gw.CreateTask(ctx, t)
		if err != nil {
			return d, fmt.Errorf("create task %s: %w", t.Name, err)
		}
		created.IsNew = false
		d.Tasks.Tasks[i] = created
	}

	if n := len(d.Contacts.RemovedContactIDs) + len(d.Tasks.RemovedTaskIDs); n > 0 {
		log.Warn("removed contacts and tasks are not deleted remotely", "count", n)
	}
	return d, nil
}

// detach copies the slices Submit writes to, leaving the caller's draft
// untouched.
func detach(d domain.Draft) domain.Draft {
	d.Contacts.Contacts = slices.Clone(d.Contacts.Contacts)
	d.Documents.Documents = slices.Clone(d.Documents.Documents)
	d.Tasks.Tasks = slices.Clone(d.Tasks.Tasks)
	return d
}

// Compile-time assertion that Service implements domain.SubmissionService.
var _ domain.SubmissionService = (*Service)(nil)
