package wizard

import (
	"context"
	"fmt"
	"slices"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

// List-valued sections are replaced whole on every change so a Patch stays
// a top-level shallow merge. Removing an item the backend already knows
// records its id for deletion on submit; removing a new item just drops it.

// StageFiles adds files to the upload step. Files over the upload limit are
// rejected and reported by name; the rest are staged.
func StageFiles(ctx context.Context, c *Controller, files ...domain.PendingFile) error {
	sec := c.Draft().Upload
	sec.Files = slices.Clone(sec.Files)
	var errs []error
	for _, f := range files {
		if f.Size > domain.MaxUploadBytes {
			errs = append(errs, &errors.FileTooLargeError{Name: f.Name, Size: f.Size, Limit: domain.MaxUploadBytes})
			continue
		}
		if f.ID == "" {
			f.ID = domain.NewEntityID()
		}
		sec.Files = append(sec.Files, f)
	}
	if err := c.Update(ctx, domain.Patch{Upload: &sec}); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// UnstageFile removes a staged upload.
func UnstageFile(ctx context.Context, c *Controller, id domain.EntityID) error {
	sec := c.Draft().Upload
	i := slices.IndexFunc(sec.Files, func(f domain.PendingFile) bool { return f.ID == id })
	if i < 0 {
		return fmt.Errorf("staged file %s: %w", id, errors.ErrNotFound)
	}
	sec.Files = slices.Delete(slices.Clone(sec.Files), i, i+1)
	return c.Update(ctx, domain.Patch{Upload: &sec})
}

// AddContact appends a new project contact and returns its client id.
func AddContact(ctx context.Context, c *Controller, contact domain.Contact) (domain.EntityID, error) {
	var fe errors.FieldErrors
	if contact.Name() == "" {
		fe.Add("name", "a name or company is required")
	}
	checkContact(&fe, "", contact)
	if len(fe) > 0 {
		return "", fe
	}
	contact.ID, contact.IsNew = domain.NewEntityID(), true
	sec := c.Draft().Contacts
	sec.Contacts = append(slices.Clone(sec.Contacts), contact)
	return contact.ID, c.Update(ctx, domain.Patch{Contacts: &sec})
}

// RemoveContact drops a project contact.
func RemoveContact(ctx context.Context, c *Controller, id domain.EntityID) error {
	sec := c.Draft().Contacts
	i := slices.IndexFunc(sec.Contacts, func(x domain.Contact) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("contact %s: %w", id, errors.ErrNotFound)
	}
	if !sec.Contacts[i].IsNew {
		sec.RemovedContactIDs = append(slices.Clone(sec.RemovedContactIDs), id)
	}
	sec.Contacts = slices.Delete(slices.Clone(sec.Contacts), i, i+1)
	return c.Update(ctx, domain.Patch{Contacts: &sec})
}

// AddDocument attaches a local file to the documents step.
func AddDocument(ctx context.Context, c *Controller, f domain.PendingFile) (domain.EntityID, error) {
	if f.Size > domain.MaxUploadBytes {
		return "", &errors.FileTooLargeError{Name: f.Name, Size: f.Size, Limit: domain.MaxUploadBytes}
	}
	doc := domain.Document{ID: domain.NewEntityID(), IsNew: true, Name: f.Name, Path: f.Path, Size: f.Size}
	sec := c.Draft().Documents
	sec.Documents = append(slices.Clone(sec.Documents), doc)
	return doc.ID, c.Update(ctx, domain.Patch{Documents: &sec})
}

// RemoveDocument drops a document.
func RemoveDocument(ctx context.Context, c *Controller, id domain.EntityID) error {
	sec := c.Draft().Documents
	i := slices.IndexFunc(sec.Documents, func(x domain.Document) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("document %s: %w", id, errors.ErrNotFound)
	}
	if !sec.Documents[i].IsNew {
		sec.RemovedDocumentIDs = append(slices.Clone(sec.RemovedDocumentIDs), id)
	}
	sec.Documents = slices.Delete(slices.Clone(sec.Documents), i, i+1)
	return c.Update(ctx, domain.Patch{Documents: &sec})
}

// AddTask appends a new follow-up task.
func AddTask(ctx context.Context, c *Controller, t domain.Task) (domain.EntityID, error) {
	var fe errors.FieldErrors
	fe.Required("name", t.Name)
	if t.DueDate.IsZero() {
		fe.Add("due_date", "is required")
	}
	if len(fe) > 0 {
		return "", fe
	}
	t.ID, t.IsNew = domain.NewEntityID(), true
	sec := c.Draft().Tasks
	sec.Tasks = append(slices.Clone(sec.Tasks), t)
	return t.ID, c.Update(ctx, domain.Patch{Tasks: &sec})
}

// RemoveTask drops a task.
func RemoveTask(ctx context.Context, c *Controller, id domain.EntityID) error {
	sec := c.Draft().Tasks
	i := slices.IndexFunc(sec.Tasks, func(x domain.Task) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, errors.ErrNotFound)
	}
	if !sec.Tasks[i].IsNew {
		sec.RemovedTaskIDs = append(slices.Clone(sec.RemovedTaskIDs), id)
	}
	sec.Tasks = slices.Delete(slices.Clone(sec.Tasks), i, i+1)
	return c.Update(ctx, domain.Patch{Tasks: &sec})
}

// SetRemedyFields records which furnishing dates the jurisdiction needs.
func SetRemedyFields(ctx context.Context, c *Controller, fields []domain.RemedyDateField) error {
	sec := c.Draft().Dates
	sec.RemedyFields = slices.Clone(fields)
	return c.Update(ctx, domain.Patch{Dates: &sec})
}

// SetDeadlines caches a calculated deadline list in the draft.
func SetDeadlines(ctx context.Context, c *Controller, items []domain.Deadline, fetchedOn domain.Date) error {
	sec := domain.DeadlinesSection{Items: slices.Clone(items), FetchedOn: fetchedOn}
	return c.Update(ctx, domain.Patch{Deadlines: &sec})
}
