package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/store"
)

const goodPass = "Corr3ct-Horse"

type fakeAuthGateway struct {
	token string
	err   error
	got   domain.LoginRequest
}

func (f *fakeAuthGateway) Login(_ context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	f.got = req
	return domain.AuthResponse{Token: f.token, User: domain.User{ID: "u-1", Email: req.Email}}, f.err
}

func (f *fakeAuthGateway) Signup(_ context.Context, req domain.SignupRequest) (domain.AuthResponse, error) {
	return domain.AuthResponse{Token: f.token, User: domain.User{ID: "u-2", Email: req.Email, Name: req.Name}}, f.err
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestLogin_StoresSession(t *testing.T) {
	gw := &fakeAuthGateway{token: signed(t, time.Now().Add(time.Hour))}
	svc := New(gw, store.NewSessionFileStore(t.TempDir()), goodPass, "http://api.test")

	sess, err := svc.Login(context.Background(), "  pat@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", gw.got.Email)
	assert.Equal(t, "http://api.test", sess.ServerURL)

	cur, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, sess, cur)

	require.NoError(t, svc.Logout())
	_, err = svc.Current()
	assert.ErrorIs(t, err, errors.ErrLoginRequired)
}

func TestLogin_Rejections(t *testing.T) {
	gw := &fakeAuthGateway{token: "opaque"}
	dir := t.TempDir()

	_, err := New(gw, store.NewSessionFileStore(dir), goodPass, "").Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = New(gw, store.NewSessionFileStore(dir), "short", "").Login(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, ErrWeakPassphrase)

	_, err = New(gw, store.NewSessionFileStore(dir), "", "").Login(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, errors.ErrPassphraseRequired)

	gw.err = &errors.HTTPError{Method: "POST", Path: "/login", Status: "401 Unauthorized", Code: 401}
	_, err = New(gw, store.NewSessionFileStore(dir), goodPass, "").Login(context.Background(), "a@b.co", "pw")
	assert.ErrorIs(t, err, errors.ErrLoginRequired)
}

func TestCurrent_ExpiredToken(t *testing.T) {
	gw := &fakeAuthGateway{token: signed(t, time.Now().Add(-time.Minute))}
	svc := New(gw, store.NewSessionFileStore(t.TempDir()), goodPass, "")
	_, err := svc.Login(context.Background(), "pat@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Current()
	assert.ErrorIs(t, err, errors.ErrLoginRequired)

	u, ok := svc.StoredUser()
	require.True(t, ok, "the draft stays scoped to the user until logout")
	assert.Equal(t, "u-1", u.ID)

	require.NoError(t, svc.Logout())
	_, ok = svc.StoredUser()
	assert.False(t, ok)
}

func TestCurrent_OpaqueTokenIsAccepted(t *testing.T) {
	gw := &fakeAuthGateway{token: "not-a-jwt"}
	svc := New(gw, store.NewSessionFileStore(t.TempDir()), goodPass, "")
	_, err := svc.Signup(context.Background(), domain.SignupRequest{Name: "Pat", Email: "pat@example.com", Password: "pw"})
	require.NoError(t, err)

	sess, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "Pat", sess.User.Name)
}

func TestRemember_KeepsMostRecentFirst(t *testing.T) {
	gw := &fakeAuthGateway{token: "opaque"}
	svc := New(gw, store.NewSessionFileStore(t.TempDir()), goodPass, "")
	_, err := svc.Login(context.Background(), "pat@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Remember(domain.ProjectSummary{ID: "p1", Name: "One"}))
	require.NoError(t, svc.Remember(domain.ProjectSummary{ID: "p2", Name: "Two"}))
	require.NoError(t, svc.Remember(domain.ProjectSummary{ID: "p1", Name: "One"}))

	sess, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, []domain.ProjectSummary{{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"}}, sess.ActiveProjects)
}

func TestIsSecurePassphrase(t *testing.T) {
	assert.True(t, isSecurePassphrase(goodPass))
	assert.False(t, isSecurePassphrase("alllowercase1!"))
	assert.False(t, isSecurePassphrase("Sh0rt!"))
}
