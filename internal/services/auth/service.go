package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 10
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
	// ErrInvalidCredentials is returned for a malformed email or empty password.
	ErrInvalidCredentials = errors.New("email and password are required")
)

// Service logs the user in against the backend and keeps the session,
// sealed under the local passphrase.
type Service struct {
	gw         domain.AuthGateway
	store      domain.SessionStore
	passphrase string
	serverURL  string
	now        func() time.Time
}

// New returns an auth service. passphrase unlocks the session store and
// serverURL is recorded in new sessions.
func New(gw domain.AuthGateway, store domain.SessionStore, passphrase, serverURL string) *Service {
	return &Service{gw: gw, store: store, passphrase: passphrase, serverURL: serverURL, now: time.Now}
}

// Login exchanges credentials for a token and stores the new session.
func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err := s.checkPassphrase(); err != nil {
		return domain.Session{}, err
	}
	resp, err := s.gw.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return domain.Session{}, err
	}
	return s.save(resp)
}

// Signup creates an account and stores the new session.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (domain.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err := s.checkPassphrase(); err != nil {
		return domain.Session{}, err
	}
	resp, err := s.gw.Signup(ctx, req)
	if err != nil {
		return domain.Session{}, err
	}
	return s.save(resp)
}

// Logout forgets the stored session.
func (s *Service) Logout() error { return s.store.ClearSession() }

// StoredUser returns the user of the stored session even when its token has
// expired. It reports false when there is no readable session.
func (s *Service) StoredUser() (domain.User, bool) {
	if s.passphrase == "" {
		return domain.User{}, false
	}
	sess, ok, err := s.store.LoadSession(s.passphrase)
	if err != nil || !ok {
		return domain.User{}, false
	}
	return sess.User, sess.User.ID != ""
}

// Current returns the stored session. A missing session or a token past its
// expiry is ErrLoginRequired.
func (s *Service) Current() (domain.Session, error) {
	if s.passphrase == "" {
		return domain.Session{}, errors.ErrPassphraseRequired
	}
	sess, ok, err := s.store.LoadSession(s.passphrase)
	if err != nil {
		return domain.Session{}, err
	}
	if !ok || !sess.Authenticated() {
		return domain.Session{}, errors.ErrLoginRequired
	}
	if exp, ok := tokenExpiry(sess.Token); ok && !s.now().Before(exp) {
		return domain.Session{}, fmt.Errorf("token expired at %s: %w", exp.Format(time.RFC3339), errors.ErrLoginRequired)
	}
	return sess, nil
}

// Remember updates the active project list of the stored session.
func (s *Service) Remember(p domain.ProjectSummary) error {
	sess, err := s.Current()
	if err != nil {
		return err
	}
	out := []domain.ProjectSummary{p}
	for _, prev := range sess.ActiveProjects {
		if prev.ID != p.ID {
			out = append(out, prev)
		}
	}
	if len(out) > 10 {
		out = out[:10]
	}
	sess.ActiveProjects = out
	return s.store.SaveSession(s.passphrase, sess)
}

func (s *Service) save(resp domain.AuthResponse) (domain.Session, error) {
	sess := domain.Session{ServerURL: s.serverURL, Token: resp.Token, User: resp.User}
	if err := s.store.SaveSession(s.passphrase, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (s *Service) checkPassphrase() error {
	if s.passphrase == "" {
		return errors.ErrPassphraseRequired
	}
	if !isSecurePassphrase(s.passphrase) {
		return ErrWeakPassphrase
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend verifies. Opaque (non-JWT) tokens report ok=false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.AuthService.
var _ domain.AuthService = (*Service)(nil)
