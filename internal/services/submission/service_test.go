package submission

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

// recorder logs every backend call in order.
type recorder struct {
	calls   []string
	failOn  string
	project domain.Project
	tasks   []domain.Task
}

func (r *recorder) hit(name string) error {
	r.calls = append(r.calls, name)
	if name == r.failOn {
		return errors.NewBackendValidationError(422, "", map[string][]string{"x": {name + " rejected"}})
	}
	return nil
}

func (r *recorder) ProjectInfo(context.Context, domain.ProjectID) (domain.Project, error) {
	return domain.Project{}, nil
}

func (r *recorder) SaveProject(_ context.Context, p domain.Project) (domain.Project, error) {
	r.project = p
	if p.ID == "" {
		p.ID = "p-new"
	}
	return p, r.hit("save-project")
}

func (r *recorder) SaveWizardStep(context.Context, domain.SaveStepRequest) (domain.SaveStepResponse, error) {
	return domain.SaveStepResponse{}, nil
}

func (r *recorder) DeleteWizardDraft(context.Context, string) error { return nil }

func (r *recorder) ProjectContacts(context.Context, domain.ProjectID) ([]domain.Contact, error) {
	return nil, nil
}

func (r *recorder) SaveCustomerContact(_ context.Context, c domain.Contact) (domain.Contact, error) {
	c.ID, c.IsNew = "cust-1", false
	return c, r.hit("customer")
}

func (r *recorder) SaveProjectContact(_ context.Context, req domain.SaveProjectContactRequest) (domain.Contact, error) {
	return req.Contact, r.hit("contact:" + req.Contact.Name())
}

func (r *recorder) Documents(context.Context, domain.ProjectID) ([]domain.Document, error) {
	return nil, nil
}

func (r *recorder) UploadDocuments(context.Context, domain.ProjectID, []domain.UploadFile) ([]domain.Document, error) {
	return nil, nil
}

func (r *recorder) DeleteDocument(_ context.Context, req domain.DeleteDocumentRequest) error {
	return r.hit("delete:" + req.DocumentID.String())
}

func (r *recorder) TaskActions(context.Context) ([]domain.Option, error) { return nil, nil }

func (r *recorder) TaskCount(context.Context, domain.ProjectID) (domain.TaskCount, error) {
	return domain.TaskCount{}, nil
}

func (r *recorder) Tasks(context.Context, domain.TaskFilter) ([]domain.Task, error) { return nil, nil }

func (r *recorder) Task(context.Context, domain.EntityID) (domain.Task, error) {
	return domain.Task{}, nil
}

func (r *recorder) CreateTask(_ context.Context, t domain.Task) (domain.Task, error) {
	r.tasks = append(r.tasks, t)
	return t, r.hit("task:" + t.Name)
}

type uploader struct {
	r     *recorder
	files []domain.PendingFile
}

func (u *uploader) Stage(...string) ([]domain.PendingFile, []error) { return nil, nil }

func (u *uploader) Upload(_ context.Context, id domain.ProjectID, files []domain.PendingFile) ([]domain.Document, error) {
	u.files = files
	return nil, u.r.hit(fmt.Sprintf("upload:%s:%d", id, len(files)))
}

func draft() domain.Draft {
	return domain.Draft{
		Upload:  domain.UploadSection{Files: []domain.PendingFile{{Name: "contract.pdf", Path: "/tmp/contract.pdf"}}},
		Details: domain.DetailsSection{ProjectName: "Tower"},
		Contract: domain.ContractSection{
			BaseAmount: 100000, AdditionalAmount: 20000, PaymentsReceived: 30000,
		},
		Contacts: domain.ContactsSection{
			Customer: domain.Contact{ID: "tmp", IsNew: true, Company: "Acme GC"},
			Contacts: []domain.Contact{
				{ID: "c-old", FirstName: "Old"},
				{ID: "c-new", IsNew: true, FirstName: "New"},
			},
			RemovedContactIDs: []domain.EntityID{"c-gone"},
		},
		Documents: domain.DocumentsSection{
			Documents: []domain.Document{
				{ID: "d-old", Name: "old.pdf"},
				{ID: "d-new", IsNew: true, Name: "photo.jpg", Path: "/tmp/photo.jpg"},
			},
			RemovedDocumentIDs: []domain.EntityID{"d-gone"},
		},
		Tasks: domain.TasksSection{Tasks: []domain.Task{
			{ID: "t-old", Name: "Old task"},
			{ID: "t-new", IsNew: true, Name: "Send notice", DueDate: domain.NewDate(2024, 2, 1)},
		}},
	}
}

func TestSubmit_Order(t *testing.T) {
	r := &recorder{}
	up := &uploader{r: r}
	out, err := New(r, up, nil).Submit(context.Background(), draft())
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("p-new"), out.ProjectID)

	assert.Equal(t, []string{
		"customer",
		"save-project",
		"contact:New",
		"upload:p-new:2",
		"delete:d-gone",
		"task:Send notice",
	}, r.calls)

	assert.Equal(t, domain.EntityID("cust-1"), r.project.CustomerID)
	assert.Equal(t, domain.Money(120000), r.project.Contract.RevisedCost)
	assert.Equal(t, domain.Money(90000), r.project.Contract.UnpaidBalance)
	assert.Equal(t, "contract.pdf", up.files[0].Name)
	assert.Equal(t, "photo.jpg", up.files[1].Name)

	require.Len(t, r.tasks, 1)
	assert.Equal(t, domain.ProjectID("p-new"), r.tasks[0].ProjectID)
	assert.Empty(t, r.tasks[0].ID)
}

func TestSubmit_StopsAtFirstFailure(t *testing.T) {
	r := &recorder{failOn: "contact:New"}
	out, err := New(r, &uploader{r: r}, nil).Submit(context.Background(), draft())
	require.Error(t, err)
	assert.Equal(t, domain.ProjectID("p-new"), out.ProjectID, "project id is reported for the retry")
	assert.Equal(t, "contact:New rejected", errors.UserMessage(err))
	assert.Equal(t, []string{"customer", "save-project", "contact:New"}, r.calls)
}

func TestSubmit_UpdateSkipsPersistedCustomer(t *testing.T) {
	r := &recorder{}
	d := domain.Draft{
		ProjectID: "p-7",
		Contacts:  domain.ContactsSection{Customer: domain.Contact{ID: "cust-9", Company: "Acme"}},
	}
	out, err := New(r, &uploader{r: r}, nil).Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("p-7"), out.ProjectID)
	assert.Equal(t, []string{"save-project"}, r.calls)
}

func TestSubmit_RetryRepeatsOnlyWhatFailed(t *testing.T) {
	ctx := context.Background()
	r := &recorder{failOn: "task:Send notice"}
	svc := New(r, &uploader{r: r}, nil)
	in := draft()

	out, err := svc.Submit(ctx, in)
	require.Error(t, err)
	assert.Equal(t, domain.ProjectID("p-new"), out.ProjectID)
	assert.False(t, out.Contacts.Customer.IsNew)
	assert.Equal(t, domain.EntityID("cust-1"), out.Contacts.Customer.ID)
	assert.False(t, out.Contacts.Contacts[1].IsNew)
	assert.Empty(t, out.Upload.Files)
	assert.Empty(t, out.Documents.RemovedDocumentIDs)
	assert.True(t, out.Tasks.Tasks[1].IsNew, "the failed task is still pending")

	// The caller's draft is not modified.
	assert.True(t, in.Contacts.Contacts[1].IsNew)
	assert.Equal(t, []domain.EntityID{"d-gone"}, in.Documents.RemovedDocumentIDs)

	r.calls, r.failOn = nil, ""
	out, err = svc.Submit(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"save-project", "task:Send notice"}, r.calls)
	assert.False(t, out.Tasks.Tasks[1].IsNew)

	r.calls = nil
	_, err = svc.Submit(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"save-project"}, r.calls, "nothing is left but the project update")
}

func TestSubmit_FailedDeleteIsRetried(t *testing.T) {
	ctx := context.Background()
	r := &recorder{failOn: "delete:d-gone"}
	svc := New(r, &uploader{r: r}, nil)

	out, err := svc.Submit(ctx, draft())
	require.Error(t, err)
	assert.Equal(t, []domain.EntityID{"d-gone"}, out.Documents.RemovedDocumentIDs)

	r.calls, r.failOn = nil, ""
	_, err = svc.Submit(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"save-project", "delete:d-gone", "task:Send notice"}, r.calls)
}
