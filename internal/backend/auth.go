package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"liendesk/internal/domain"
)

const minPasswordLen = 8

var (
	errTokenInvalid            = errors.New("invalid token")
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
)

type account struct {
	user domain.User
	hash []byte
}

type ctxKey struct{}

// userFrom returns the user id the auth middleware stored on the request.
func userFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": "liendesk-devbackend",
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Server) verifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", errTokenInvalid
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errTokenInvalid
	}
	return sub, nil
}

// requireAuth rejects requests without a valid bearer token with 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		sub, err := s.verifyToken(raw)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		s.mu.RLock()
		_, known := s.usersByID[sub]
		s.mu.RUnlock()
		if !known {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sub)))
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	fields := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = []string{"The name field is required."}
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = []string{"The email must be a valid email address."}
	}
	if len(req.Password) < minPasswordLen {
		fields["password"] = []string{fmt.Sprintf("The password must be at least %d characters.", minPasswordLen)}
	}
	if len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	user := domain.User{ID: uuid.NewString(), Name: req.Name, Email: req.Email, Company: req.Company}

	s.mu.Lock()
	if _, taken := s.accounts[req.Email]; taken {
		s.mu.Unlock()
		writeFieldErrors(w, http.StatusConflict, map[string][]string{"email": {"The email has already been taken."}})
		return
	}
	s.accounts[req.Email] = &account{user: user, hash: hash}
	s.usersByID[user.ID] = req.Email
	s.mu.Unlock()

	s.respondWithToken(w, r, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.RLock()
	acct, ok := s.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "Invalid email or password.")
		return
	}
	s.respondWithToken(w, r, acct.user)
}

func (s *Server) respondWithToken(w http.ResponseWriter, r *http.Request, user domain.User) {
	token, err := s.issueToken(user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("token issued", "user_id", user.ID, "expires_in", s.cfg.TokenTTL.String())
	writeJSON(w, http.StatusOK, domain.AuthResponse{Token: token, User: user})
}

// defaultTokenTTL is the lifetime of an issued bearer token.
const defaultTokenTTL = 12 * time.Hour
