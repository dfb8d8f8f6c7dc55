package commands

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"liendesk/internal/backend"
	"liendesk/internal/errors"
)

const testPassphrase = "correct horse battery"

type cli struct {
	t    *testing.T
	home string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	srv, err := backend.New(backend.Config{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	t.Setenv("LIENDESK_API_BASE_URL", ts.URL)
	t.Setenv("LIENDESK_LOGGING_FILE", "false")
	t.Setenv("LIENDESK_LOGGING_LEVEL", "ERROR")
	return &cli{t: t, home: t.TempDir()}
}

// run executes one CLI invocation and returns its standard output.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--home", c.home, "-p", testPassphrase}, args...))
	err := run(root)
	return out.String(), err
}

func (c *cli) must(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "liendesk %v", args)
	return out
}

func (c *cli) signup() {
	c.t.Helper()
	out := c.must("auth", "signup", "--name", "Pat Doe", "--email", "pat@example.com", "--password", "hunter22!")
	require.Contains(c.t, out, "Account created for Pat Doe")
}

func TestAuth_SignupWhoamiLogout(t *testing.T) {
	c := newCLI(t)
	c.signup()

	out := c.must("auth", "whoami")
	assert.Contains(t, out, "pat@example.com")

	c.must("auth", "logout")
	_, err := c.run("auth", "whoami")
	assert.ErrorIs(t, err, errors.ErrLoginRequired)

	out = c.must("auth", "login", "--email", "pat@example.com", "--password", "hunter22!")
	assert.Contains(t, out, "Logged in as Pat Doe")
}

func TestAuth_LogoutDiscardsDraft(t *testing.T) {
	c := newCLI(t)
	c.signup()
	c.must("wizard", "next")
	c.must("wizard", "set", "project_name=Private Job")

	c.must("auth", "logout")

	out := c.must("-o", "json", "wizard", "status")
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.EqualValues(t, 1, status["step"])
	assert.NotContains(t, status, "project")
}

func TestAuth_WrongPassphrase(t *testing.T) {
	c := newCLI(t)
	c.signup()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--home", c.home, "-p", "a different passphrase", "auth", "whoami"})
	err := run(root)
	assert.ErrorIs(t, err, errors.ErrWrongPassphrase)
}

func TestWizard_StepThroughDetailsAndDates(t *testing.T) {
	c := newCLI(t)
	c.signup()

	out := c.must("wizard", "start")
	assert.Contains(t, out, "Step 1 of 11")

	c.must("wizard", "next")

	// Details is empty, so next must refuse and leave the step alone.
	_, err := c.run("wizard", "next")
	assert.ErrorIs(t, err, errors.ErrStepIncomplete)

	c.must("wizard", "set", "project_name=Riverside Tower", "country=US", "state=TX",
		"project_type=commercial", "role=sub", "customer_type=gc")
	c.must("wizard", "next")

	// Entering Dates fetched the remedy fields; TX needs the last furnishing date.
	_, err = c.run("wizard", "set", "start_date=2024-01-10", "first_furnishing_date=2024-01-15")
	require.NoError(t, err)
	_, err = c.run("wizard", "next")
	assert.ErrorIs(t, err, errors.ErrStepIncomplete)

	c.must("wizard", "set", "last_furnishing_date=2024-02-20")
	c.must("wizard", "next")

	out = c.must("-o", "json", "wizard", "status")
	var status struct {
		Step       int    `json:"step"`
		MaxReached int    `json:"max_reached"`
		Project    string `json:"project"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, 4, status.Step)
	assert.Equal(t, 4, status.MaxReached)
	assert.Equal(t, "Riverside Tower", status.Project)

	// Back to a reached step works; jumping ahead of it does not.
	c.must("wizard", "goto", "details")
	_, err = c.run("wizard", "goto", "9")
	assert.ErrorIs(t, err, errors.ErrStepNotReached)

	// The end date was estimated from start and first furnishing.
	c.must("wizard", "goto", "3")
	out = c.must("wizard", "show")
	assert.Contains(t, out, "2024-04-09")
}

func TestWizard_SetRejectsUnknownField(t *testing.T) {
	c := newCLI(t)
	c.must("wizard", "start")
	_, err := c.run("wizard", "set", "budget=12")
	assert.Error(t, err)
}

func TestWizard_CancelDiscardsDraft(t *testing.T) {
	c := newCLI(t)
	c.must("wizard", "next")
	c.must("wizard", "set", "project_name=Scratch")

	c.must("wizard", "cancel", "--yes")

	out := c.must("-o", "yaml", "wizard", "status")
	var status map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &status))
	assert.Equal(t, 1, status["step"])
	assert.NotContains(t, status, "project")
}

func TestWizard_TaskNeedsDueDate(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("wizard", "task", "add", "--name", "Call owner")
	var fe errors.FieldErrors
	require.ErrorAs(t, err, &fe)
	_, ok := fe.Get("due_date")
	assert.True(t, ok)
}

func TestRemediesAndCatalog(t *testing.T) {
	c := newCLI(t)
	c.signup()

	out := c.must("catalog", "states", "US")
	assert.Contains(t, out, "TX")

	out = c.must("catalog", "customer-types", "gc", "--project-type", "public")
	assert.Contains(t, out, "agency")

	out = c.must("remedies", "--state", "TX", "--project-type", "commercial", "--role", "sub",
		"--customer-type", "gc", "--date", "first_furnishing_date=2024-01-15", "--date", "last_furnishing_date=2024-02-20")
	assert.Contains(t, out, "Monthly notice")
	assert.Contains(t, out, "Lien affidavit")

	_, err := c.run("remedies", "--state", "TX")
	var fe errors.FieldErrors
	assert.ErrorAs(t, err, &fe)
}

func TestOutputFormatIsChecked(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("-o", "xml", "wizard", "status")
	assert.ErrorContains(t, err, "unknown output format")
}
