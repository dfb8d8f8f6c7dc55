package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"liendesk/internal/domain"
)

var _ domain.Gateway = (*HTTP)(nil)

func projectQuery(id domain.ProjectID) url.Values {
	return url.Values{"project_id": {id.String()}}
}

// ---------- Auth ----------

func (c *HTTP) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/login", req, &out); err != nil {
		return domain.AuthResponse{}, err
	}
	return out, nil
}

func (c *HTTP) Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/signup", req, &out); err != nil {
		return domain.AuthResponse{}, err
	}
	return out, nil
}

// ---------- Master data ----------

func (c *HTTP) Countries(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/countries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) States(ctx context.Context, countryID string) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.post(ctx, "/states", domain.StatesRequest{CountryID: countryID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) ProjectTypes(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/project-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) ProjectRoles(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/project-roles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) CustomerTypes(ctx context.Context, req domain.RoleCustomersRequest) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.post(ctx, "/check-project-roles-customers", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------- Remedies ----------

func (c *HTTP) RemedyDates(ctx context.Context, req domain.RemedyDatesRequest) ([]domain.RemedyDateField, error) {
	var out []domain.RemedyDateField
	if err := c.post(ctx, "/remedy-dates", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) DeadlineInfo(ctx context.Context, req domain.DeadlineRequest) ([]domain.Deadline, error) {
	var out []domain.Deadline
	if err := c.post(ctx, "/deadline-info", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------- Projects ----------

func (c *HTTP) ProjectInfo(ctx context.Context, id domain.ProjectID) (domain.Project, error) {
	var out domain.Project
	if err := c.getJSON(ctx, "/projects/info", projectQuery(id), &out); err != nil {
		return domain.Project{}, err
	}
	return out, nil
}

func (c *HTTP) SaveProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	var out domain.Project
	if err := c.post(ctx, "/save-project", p, &out); err != nil {
		return domain.Project{}, err
	}
	return out, nil
}

func (c *HTTP) SaveWizardStep(ctx context.Context, req domain.SaveStepRequest) (domain.SaveStepResponse, error) {
	var out domain.SaveStepResponse
	if err := c.post(ctx, "/projects/wizard/save-step", req, &out); err != nil {
		return domain.SaveStepResponse{}, err
	}
	return out, nil
}

func (c *HTTP) DeleteWizardDraft(ctx context.Context, draftID string) error {
	return c.delete(ctx, "/projects/wizard/draft/"+url.PathEscape(draftID))
}

// ---------- Contacts ----------

func (c *HTTP) ProjectContacts(ctx context.Context, id domain.ProjectID) ([]domain.Contact, error) {
	var out []domain.Contact
	var q url.Values
	if id != "" {
		q = projectQuery(id)
	}
	if err := c.getJSON(ctx, "/project-contacts-all", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) SaveCustomerContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	var out domain.Contact
	if err := c.post(ctx, "/save-customer-contact", contact, &out); err != nil {
		return domain.Contact{}, err
	}
	return out, nil
}

func (c *HTTP) SaveProjectContact(ctx context.Context, req domain.SaveProjectContactRequest) (domain.Contact, error) {
	var out domain.Contact
	if err := c.post(ctx, "/save-project-contact", req, &out); err != nil {
		return domain.Contact{}, err
	}
	return out, nil
}

// ---------- Documents ----------

func (c *HTTP) Documents(ctx context.Context, id domain.ProjectID) ([]domain.Document, error) {
	var out []domain.Document
	if err := c.getJSON(ctx, "/documents", projectQuery(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadDocuments sends files as one multipart request with a project_id
// field and one documents[] part per file.
func (c *HTTP) UploadDocuments(ctx context.Context, id domain.ProjectID, files []domain.UploadFile) ([]domain.Document, error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("project_id", id.String()); err != nil {
		return nil, err
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("documents[]", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	var out []domain.Document
	if err := c.do(ctx, http.MethodPost, "/documents/upload", nil, body, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) DeleteDocument(ctx context.Context, req domain.DeleteDocumentRequest) error {
	return c.post(ctx, "/document/delete", req, nil)
}

// ---------- Tasks ----------

func (c *HTTP) TaskActions(ctx context.Context) ([]domain.Option, error) {
	var out []domain.Option
	if err := c.getJSON(ctx, "/task-actions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) TaskCount(ctx context.Context, id domain.ProjectID) (domain.TaskCount, error) {
	var out domain.TaskCount
	var q url.Values
	if id != "" {
		q = projectQuery(id)
	}
	if err := c.getJSON(ctx, "/tasks/count", q, &out); err != nil {
		return domain.TaskCount{}, err
	}
	return out, nil
}

func (c *HTTP) Tasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	q := url.Values{}
	if f.ProjectID != "" {
		q.Set("project_id", f.ProjectID.String())
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Open {
		q.Set("open", strconv.FormatBool(true))
	}
	var out []domain.Task
	if err := c.getJSON(ctx, "/tasks", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) Task(ctx context.Context, id domain.EntityID) (domain.Task, error) {
	var out domain.Task
	if err := c.getJSON(ctx, "/tasks/"+url.PathEscape(id.String()), nil, &out); err != nil {
		return domain.Task{}, err
	}
	return out, nil
}

func (c *HTTP) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	var out domain.Task
	if err := c.post(ctx, "/tasks", t, &out); err != nil {
		return domain.Task{}, err
	}
	return out, nil
}
