package backend

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"liendesk/internal/domain"
	"liendesk/internal/logging"
)

// Config tunes a Server. Zero values fall back to development defaults.
type Config struct {
	// Secret signs bearer tokens (HS256).
	Secret []byte
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
	// BcryptCost is the password hashing cost.
	BcryptCost int
	// MaxUploadBytes caps each uploaded document.
	MaxUploadBytes int64
	// Seed is the master data and rule table. Nil uses the embedded seed.
	Seed *Seed
	// Now overrides the clock for token expiry and daysRemaining.
	Now func() time.Time
	// Logger receives the access log. Nil discards it.
	Logger *logging.Logger
}

// Server is an in-memory implementation of the lien backend API.
// All state is lost when the process exits.
type Server struct {
	cfg     Config
	seed    *Seed
	project *validator
	logger  *logging.Logger

	mu        sync.RWMutex
	accounts  map[string]*account // by email
	usersByID map[string]string   // id -> email
	projects  map[domain.ProjectID]*projectRecord
	contacts  []contactRecord
	documents map[domain.ProjectID][]domain.Document
	tasks     []taskRecord
	drafts    map[string]draftRecord
}

type projectRecord struct {
	owner   string
	project domain.Project
}

type taskRecord struct {
	owner string
	task  domain.Task
}

type contactRecord struct {
	owner     string
	projectID domain.ProjectID
	customer  bool
	contact   domain.Contact
}

type draftRecord struct {
	owner string
	req   domain.SaveStepRequest
	saved time.Time
}

// New returns a server with no users or projects.
func New(cfg Config) (*Server, error) {
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte("liendesk-dev-secret")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = domain.MaxUploadBytes
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Seed == nil {
		cfg.Seed = DefaultSeed()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger()
	}
	v, err := newProjectValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		seed:      cfg.Seed,
		project:   v,
		logger:    cfg.Logger.WithComponent("devbackend"),
		accounts:  map[string]*account{},
		usersByID: map[string]string{},
		projects:  map[domain.ProjectID]*projectRecord{},
		documents: map[domain.ProjectID][]domain.Document{},
		drafts:    map[string]draftRecord{},
	}, nil
}

func (s *Server) now() time.Time { return s.cfg.Now() }

func (s *Server) today() domain.Date { return domain.DateOf(s.now()) }

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.handleLogin)
	r.Post("/signup", s.handleSignup)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/countries", s.handleCountries)
		r.Post("/states", s.handleStates)
		r.Get("/project-types", s.handleProjectTypes)
		r.Get("/project-roles", s.handleProjectRoles)
		r.Post("/check-project-roles-customers", s.handleRoleCustomers)

		r.Post("/remedy-dates", s.handleRemedyDates)
		r.Post("/deadline-info", s.handleDeadlineInfo)

		r.Get("/projects/info", s.handleProjectInfo)
		r.Post("/save-project", s.handleSaveProject)
		r.Post("/projects/wizard/save-step", s.handleSaveStep)
		r.Delete("/projects/wizard/draft/{id}", s.handleDeleteDraft)

		r.Get("/project-contacts-all", s.handleContacts)
		r.Post("/save-customer-contact", s.handleSaveCustomer)
		r.Post("/save-project-contact", s.handleSaveProjectContact)

		r.Get("/documents", s.handleDocuments)
		r.Post("/documents/upload", s.handleUpload)
		r.Post("/document/delete", s.handleDeleteDocument)

		r.Get("/task-actions", s.handleTaskActions)
		r.Get("/tasks/count", s.handleTaskCount)
		r.Get("/tasks", s.handleTasks)
		r.Get("/tasks/{id}", s.handleTask)
		r.Post("/tasks", s.handleCreateTask)
	})
	return r
}

// accessLog records method, path, status, bytes and duration per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ---------- JSON helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage sends {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeFieldErrors sends {"message": ..., "errors": {field: [msg...]}}.
func writeFieldErrors(w http.ResponseWriter, status int, fields map[string][]string) {
	writeJSON(w, status, map[string]any{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeMessage(w, http.StatusInternalServerError, "Server Error")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		writeMessage(w, http.StatusBadRequest, "Malformed JSON body.")
		return false
	}
	return true
}
