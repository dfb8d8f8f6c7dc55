package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/gateway"
)

func TestHTTP_SendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Option{{ID: "US", Name: "United States"}})
	}))
	defer srv.Close()

	c := gateway.NewHTTP(srv.URL+"/", gateway.WithToken("abc"))
	got, err := c.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth)
	assert.Equal(t, []domain.Option{{ID: "US", Name: "United States"}}, got)

	c.SetToken("")
	_, err = c.Countries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestHTTP_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name: "401 is login required", status: 401, body: `{"message":"expired"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrLoginRequired)
			},
		},
		{
			name: "404 is not found", status: 404,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrNotFound)
			},
		},
		{
			name: "422 field errors", status: 422,
			body: `{"errors":{"zip":["bad zip"],"name":["name taken"]}}`,
			check: func(t *testing.T, err error) {
				var bv *errors.BackendValidationError
				require.ErrorAs(t, err, &bv)
				assert.Equal(t, 422, bv.Status)
				assert.Equal(t, "name taken", errors.UserMessage(err))
			},
		},
		{
			name: "400 message", status: 400, body: `{"message":"state is not supported"}`,
			check: func(t *testing.T, err error) {
				assert.Equal(t, "state is not supported", errors.UserMessage(err))
			},
		},
		{
			name: "500 is generic", status: 500, body: `boom`,
			check: func(t *testing.T, err error) {
				var he *errors.HTTPError
				require.ErrorAs(t, err, &he)
				assert.Equal(t, 500, he.Code)
				assert.Equal(t, errors.GenericMessage, errors.UserMessage(err))
			},
		},
		{
			name: "422 without body is generic", status: 422,
			check: func(t *testing.T, err error) {
				assert.Equal(t, errors.GenericMessage, errors.UserMessage(err))
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := gateway.NewHTTP(srv.URL).SaveProject(context.Background(), domain.Project{})
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestHTTP_QueryAndPaths(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		switch {
		case r.URL.Path == "/tasks/count":
			_, _ = io.WriteString(w, `{"total":3,"open":2,"overdue":1}`)
		case strings.HasPrefix(r.URL.Path, "/tasks"):
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()
	c := gateway.NewHTTP(srv.URL)
	ctx := context.Background()

	n, err := c.TaskCount(ctx, "p 1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCount{Total: 3, Open: 2, Overdue: 1}, n)

	_, err = c.Tasks(ctx, domain.TaskFilter{ProjectID: "p1", Search: "notice", Open: true})
	require.NoError(t, err)
	require.NoError(t, c.DeleteWizardDraft(ctx, "d/1"))

	assert.Equal(t, []string{
		"GET /tasks/count?project_id=p+1",
		"GET /tasks?open=true&project_id=p1&search=notice",
		"DELETE /projects/wizard/draft/d%2F1",
	}, seen)
}

func TestHTTP_UploadDocumentsIsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "p-1", r.FormValue("project_id"))
		files := r.MultipartForm.File["documents[]"]
		out := make([]domain.Document, 0, len(files))
		for _, fh := range files {
			out = append(out, domain.Document{ID: domain.EntityID("srv-" + fh.Filename), Name: fh.Filename, Size: fh.Size})
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	docs, err := gateway.NewHTTP(srv.URL).UploadDocuments(context.Background(), "p-1", []domain.UploadFile{
		{Name: "contract.pdf", Content: strings.NewReader("%PDF-1.4")},
		{Name: "invoice.pdf", Content: strings.NewReader("%PDF-1.7 more")},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "contract.pdf", docs[0].Name)
	assert.EqualValues(t, 8, docs[0].Size)
	assert.Equal(t, domain.EntityID("srv-invoice.pdf"), docs[1].ID)
}

func TestHTTP_ContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gateway.NewHTTP(srv.URL).Countries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTP_DecodedResultsAreReturned(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"message":"project name is taken"}`)
			return
		}
		switch r.URL.Path {
		case "/save-project":
			_ = json.NewEncoder(w).Encode(domain.Project{ID: "p-1"})
		case "/tasks/count":
			_ = json.NewEncoder(w).Encode(domain.TaskCount{Total: 3, Open: 2, Overdue: 1})
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := gateway.NewHTTP(srv.URL)

	p, err := c.SaveProject(ctx, domain.Project{})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("p-1"), p.ID)

	n, err := c.TaskCount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCount{Total: 3, Open: 2, Overdue: 1}, n)

	fail = true
	p, err = c.SaveProject(ctx, domain.Project{ID: "p-1"})
	require.Error(t, err)
	assert.Equal(t, domain.Project{}, p, "a failed call returns the zero value")
}
