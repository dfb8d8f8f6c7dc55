package app

import (
	"context"
	"fmt"
	"sync"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/store"
	"liendesk/internal/wizard"
)

// App is the context handed to every command: the wired services plus the
// lazily opened draft store.
type App struct {
	*Wire

	mu     sync.Mutex
	drafts store.DraftStore
}

// New wraps a Wire.
func New(w *Wire) *App { return &App{Wire: w} }

// Authenticate loads the stored session and puts its token on the gateway.
func (a *App) Authenticate() (domain.Session, error) {
	sess, err := a.Auth.Current()
	if err != nil {
		return domain.Session{}, err
	}
	if sess.ServerURL != "" && sess.ServerURL != a.Config.API.BaseURL {
		a.Logger.Warn("session was issued by another server",
			"session_server", sess.ServerURL, "api_base_url", a.Config.API.BaseURL)
	}
	a.Gateway.SetToken(sess.Token)
	return sess, nil
}

// DraftStore opens the configured draft store on first use, scoped to the
// stored session's user.
func (a *App) DraftStore(ctx context.Context) (store.DraftStore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.drafts != nil {
		return a.drafts, nil
	}
	var account string
	if u, ok := a.Auth.StoredUser(); ok {
		account = u.ID
	}
	ds, err := store.OpenDraftStore(ctx, store.DraftOptions{
		Backend:  a.Config.Draft.Backend,
		Dir:      a.Config.Home,
		RedisURL: a.Config.Draft.RedisURL,
		TTL:      a.Config.Draft.TTL,
		Account:  account,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s draft store: %w", a.Config.Draft.Backend, err)
	}
	a.drafts = ds
	return ds, nil
}

func (a *App) wizardOptions(ds domain.DraftStore) []wizard.Option {
	return []wizard.Option{
		wizard.WithStore(ds),
		wizard.WithRemoteDrafts(wizard.NewGatewayDrafts(a.Gateway)),
		wizard.WithSubmitter(a.Submission),
		wizard.WithLogger(a.Logger),
	}
}

// Wizard resumes the new-project wizard from the draft store.
func (a *App) Wizard(ctx context.Context) (*wizard.Controller, error) {
	ds, err := a.DraftStore(ctx)
	if err != nil {
		return nil, err
	}
	return wizard.Resume(ctx, a.wizardOptions(ds)...), nil
}

// HasDraft reports whether a resumable draft exists.
func (a *App) HasDraft(ctx context.Context) (bool, error) {
	ds, err := a.DraftStore(ctx)
	if err != nil {
		return false, err
	}
	_, ok, err := ds.LoadDraft(ctx)
	if err != nil {
		// Resume starts fresh on unreadable drafts; treat them as absent here.
		return false, nil
	}
	return ok, nil
}

// Logout deletes the local draft, which belongs to the session, and then
// the session itself.
func (a *App) Logout(ctx context.Context) error {
	ds, err := a.DraftStore(ctx)
	if err != nil {
		return err
	}
	if err := ds.ClearDraft(ctx); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return a.Auth.Logout()
}

// EditProject fetches a project and opens it in editing mode. Editing never
// touches the draft store.
func (a *App) EditProject(ctx context.Context, id domain.ProjectID) (*wizard.Controller, error) {
	if id == "" {
		return nil, errors.New("project id is required")
	}
	p, err := a.Gateway.ProjectInfo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	return wizard.ForProject(p, a.wizardOptions(nil)...), nil
}

// Close releases the draft store and the log file.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	if a.drafts != nil {
		errs = append(errs, a.drafts.Close())
		a.drafts = nil
	}
	errs = append(errs, a.Logger.Close())
	return errors.Join(errs...)
}
