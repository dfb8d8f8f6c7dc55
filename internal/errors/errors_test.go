package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_RequiredAndErr(t *testing.T) {
	var fe FieldErrors
	fe.Required("project_name", "  ")
	fe.Required("country", "US")

	require.Len(t, fe, 1)
	msg, ok := fe.Get("project_name")
	assert.True(t, ok)
	assert.Equal(t, "is required", msg)
	assert.ErrorIs(t, fe.Err(), ErrStepIncomplete)

	var empty FieldErrors
	assert.NoError(t, empty.Err())
}

func TestBackendValidationError_FirstMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		fields  map[string][]string
		want    string
	}{
		{
			name:   "alphabetically first field wins",
			fields: map[string][]string{"zip": {"zip is invalid"}, "email": {"email is taken", "second"}},
			want:   "email is taken",
		},
		{
			name:    "falls back to message",
			message: "project locked",
			want:    "project locked",
		},
		{
			name:   "blank messages skipped",
			fields: map[string][]string{"a": {" "}, "b": {"b is bad"}},
			want:   "b is bad",
		},
		{
			name: "nothing at all",
			want: GenericMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackendValidationError(422, tt.message, tt.fields)
			assert.Equal(t, tt.want, err.FirstMessage())
		})
	}
}

func TestHTTPError_Is(t *testing.T) {
	unauthorized := &HTTPError{Method: "GET", Path: "/projects/info", Status: "401 Unauthorized", Code: 401}
	assert.ErrorIs(t, unauthorized, ErrLoginRequired)
	assert.NotErrorIs(t, unauthorized, ErrNotFound)

	missing := fmt.Errorf("load project: %w", &HTTPError{Method: "GET", Path: "/tasks/9", Status: "404 Not Found", Code: 404})
	assert.ErrorIs(t, missing, ErrNotFound)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"field errors", FieldErrors{{Field: "email", Message: "invalid format"}}, "email: invalid format"},
		{"backend validation", fmt.Errorf("save: %w", NewBackendValidationError(422, "", map[string][]string{"name": {"name is required"}})), "name is required"},
		{"login", &HTTPError{Code: 401}, "Login required: run `liendesk auth login`"},
		{"too large", &FileTooLargeError{Name: "plans.pdf", Size: 11 << 20, Limit: 10 << 20}, "plans.pdf is too large (11534336 bytes); the limit is 10 MB"},
		{"network", New("dial tcp: connection refused"), GenericMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
	assert.False(t, IsUserFacing(New("boom")))
	assert.True(t, IsUserFacing(ErrNoDraft))
}
