package app

import (
	"net/http"

	"liendesk/internal/domain"
	"liendesk/internal/gateway"
	"liendesk/internal/logging"
	authsvc "liendesk/internal/services/auth"
	catalogsvc "liendesk/internal/services/catalog"
	contactsvc "liendesk/internal/services/contact"
	deadlinesvc "liendesk/internal/services/deadline"
	documentsvc "liendesk/internal/services/document"
	submissionsvc "liendesk/internal/services/submission"
	"liendesk/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config     Config
	Logger     *logging.Logger
	Gateway    *gateway.HTTP
	Sessions   *store.SessionFileStore
	Auth       *authsvc.Service
	Catalog    *catalogsvc.Service
	Deadlines  *deadlinesvc.Service
	Documents  *documentsvc.Service
	Contacts   *contactsvc.Service
	Submission *submissionsvc.Service
}

// NewWire constructs the dependency graph from cfg. The draft store is not
// opened here; see App.DraftStore.
func NewWire(cfg Config, passphrase string) (*Wire, error) {
	logDir := ""
	if cfg.Logging.File {
		logDir = cfg.Home
	}
	logger, err := logging.NewLogger(logDir, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}
	gw := gateway.NewHTTP(cfg.API.BaseURL,
		gateway.WithHTTPClient(httpClient),
		gateway.WithLogger(logger),
	)

	sessions := store.NewSessionFileStore(cfg.Home)
	docs := documentsvc.New(gw, domain.MaxUploadBytes, logger)

	return &Wire{
		Config:     cfg,
		Logger:     logger,
		Gateway:    gw,
		Sessions:   sessions,
		Auth:       authsvc.New(gw, sessions, passphrase, cfg.API.BaseURL),
		Catalog:    catalogsvc.New(gw),
		Deadlines:  deadlinesvc.New(gw, logger),
		Documents:  docs,
		Contacts:   contactsvc.New(gw),
		Submission: submissionsvc.New(gw, docs, logger),
	}, nil
}
