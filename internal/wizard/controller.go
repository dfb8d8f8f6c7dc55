package wizard

import (
	"context"
	"fmt"
	"sync"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/logging"
)

// RemoteDrafts keeps a server-side copy of an unfinished draft.
type RemoteDrafts interface {
	// SaveDraft uploads the snapshot and returns the server draft id.
	SaveDraft(ctx context.Context, snap domain.Snapshot) (string, error)
	// DiscardDraft deletes a server draft. An empty id is a no-op.
	DiscardDraft(ctx context.Context, draftID string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore persists every change to store.
func WithStore(store domain.DraftStore) Option {
	return func(c *Controller) { c.store = store }
}

// WithRemoteDrafts enables save-and-exit and server draft cleanup.
func WithRemoteDrafts(r RemoteDrafts) Option {
	return func(c *Controller) { c.remote = r }
}

// WithSubmitter sets the service that turns the draft into a project.
func WithSubmitter(s domain.SubmissionService) Option {
	return func(c *Controller) { c.submitter = s }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller drives the project wizard: the current step, the highest step
// reached and the draft assembled so far. In editing mode it never touches
// the draft store.
//
// A Controller is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	store     domain.DraftStore
	remote    RemoteDrafts
	submitter domain.SubmissionService
	logger    *logging.Logger

	draft      domain.Draft
	step       domain.Step
	maxReached domain.Step
	editing    bool
	submitted  domain.ProjectID
}

// New returns a controller at step 1 with an empty draft.
func New(opts ...Option) *Controller {
	c := &Controller{step: domain.FirstStep, maxReached: domain.FirstStep}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NopLogger()
	}
	c.logger = c.logger.WithComponent("wizard")
	return c
}

// Resume returns a controller restored from the store. A missing snapshot
// starts a fresh wizard. A corrupt one is logged, cleared and also starts
// fresh; any other load failure starts fresh but leaves the stored draft
// alone for the next run.
func Resume(ctx context.Context, opts ...Option) *Controller {
	c := New(opts...)
	if c.store == nil {
		return c
	}
	snap, ok, err := c.store.LoadDraft(ctx)
	switch {
	case errors.Is(err, errors.ErrCorruptDraft):
		c.logger.Warn("discarding corrupt draft", "error", err)
		if err := c.store.ClearDraft(ctx); err != nil {
			c.logger.Warn("clear draft", "error", err)
		}
	case err != nil:
		c.logger.Warn("draft unavailable, starting fresh", "error", err)
	case ok:
		snap = snap.Normalize()
		c.draft, c.step, c.maxReached = snap.Data, snap.Step, snap.MaxStep
		c.logger.Debug("draft restored", "step", c.step.String(), "max_step", c.maxReached.String())
	}
	return c
}

// ForProject opens an existing project for editing. Every step is
// reachable and nothing is written to the draft store.
func ForProject(p domain.Project, opts ...Option) *Controller {
	c := New(opts...)
	c.draft = p.Draft()
	c.maxReached = domain.LastStep
	c.editing = true
	return c
}

// Step returns the current step.
func (c *Controller) Step() domain.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// MaxReached returns the highest step visited.
func (c *Controller) MaxReached() domain.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxReached
}

// Draft returns a copy of the draft.
func (c *Controller) Draft() domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Editing reports whether the controller edits an existing project.
func (c *Controller) Editing() bool { return c.editing }

// Submitted returns the created project id once Submit has succeeded.
func (c *Controller) Submitted() (domain.ProjectID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted, c.submitted != ""
}

// Unit returns the unit of the current step.
func (c *Controller) Unit() Unit { return UnitFor(c.Step()) }

// Snapshot returns what the store would persist right now.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{Data: c.draft, Step: c.step, MaxStep: c.maxReached}
}

// Next advances one step, clamped at the last step. It does not validate;
// Continue is the gated form.
func (c *Controller) Next(ctx context.Context) error {
	return c.move(ctx, func(s domain.Step) (domain.Step, error) {
		if s >= domain.LastStep {
			return domain.LastStep, nil
		}
		return s + 1, nil
	})
}

// Back goes back one step, clamped at step 1.
func (c *Controller) Back(ctx context.Context) error {
	return c.move(ctx, func(s domain.Step) (domain.Step, error) {
		if s <= domain.FirstStep {
			return domain.FirstStep, nil
		}
		return s - 1, nil
	})
}

// GoTo jumps to any step already reached.
func (c *Controller) GoTo(ctx context.Context, target domain.Step) error {
	return c.move(ctx, func(domain.Step) (domain.Step, error) {
		if !target.Valid() {
			return 0, fmt.Errorf("%w: %d", errors.ErrStepOutOfRange, int(target))
		}
		if target > c.maxReached {
			return 0, fmt.Errorf("%w: %s (reached %s)", errors.ErrStepNotReached, target, c.maxReached)
		}
		return target, nil
	})
}

func (c *Controller) move(ctx context.Context, next func(domain.Step) (domain.Step, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted != "" {
		return errors.ErrAlreadySubmitted
	}
	to, err := next(c.step)
	if err != nil {
		return err
	}
	from := c.step
	c.step = to
	if to > c.maxReached {
		c.maxReached = to
	}
	if from != to {
		c.logger.Debug("step changed", "from", from.String(), "to", to.String())
	}
	return c.persistLocked(ctx)
}

// Update shallow-merges patch into the draft and persists the result.
func (c *Controller) Update(ctx context.Context, patch domain.Patch) error {
	if patch.IsEmpty() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted != "" {
		return errors.ErrAlreadySubmitted
	}
	c.draft = c.draft.Apply(patch)
	return c.persistLocked(ctx)
}

func (c *Controller) persistLocked(ctx context.Context) error {
	if c.editing || c.store == nil {
		return nil
	}
	if err := c.store.SaveDraft(ctx, c.snapshotLocked()); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// SaveAndExit stores the draft on the server and keeps the local copy so
// the wizard can resume later. The server draft id is recorded in the
// draft for subsequent saves.
func (c *Controller) SaveAndExit(ctx context.Context) error {
	if c.remote == nil {
		return c.persist(ctx)
	}
	snap := c.Snapshot()
	id, err := c.remote.SaveDraft(ctx, snap)
	if err != nil {
		return err
	}
	c.logger.Info("draft saved to server", "draft_id", id, "step", snap.Step.String())
	return c.Update(ctx, domain.Patch{ServerDraftID: &id})
}

func (c *Controller) persist(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistLocked(ctx)
}

// Submit validates every step and hands the draft to the submitter. Only
// the info sheet step can submit. On success the local draft and any server
// draft are removed; on failure the draft is kept with the progress the
// submitter reports, so the next attempt resumes where this one stopped.
func (c *Controller) Submit(ctx context.Context) (domain.ProjectID, error) {
	if id, done := c.Submitted(); done {
		return id, errors.ErrAlreadySubmitted
	}
	if c.Step() != domain.StepInfoSheet {
		return "", errors.ErrNotAtFinalStep
	}
	if c.submitter == nil {
		return "", errors.New("wizard: no submitter configured")
	}
	d := c.Draft()
	if step, fe := ValidateAll(d); len(fe) > 0 {
		return "", fmt.Errorf("%s: %w", step, fe)
	}

	out, err := c.submitter.Submit(ctx, d)
	if err != nil {
		c.logger.Warn("submission failed", "error", err, "project_id", out.ProjectID.String())
		// Whatever reached the backend is recorded so a retry only repeats the rest.
		c.mu.Lock()
		c.draft = out
		perr := c.persistLocked(ctx)
		c.mu.Unlock()
		if perr != nil {
			c.logger.Warn("record partial submission", "error", perr)
		}
		return "", err
	}
	id := out.ProjectID

	c.mu.Lock()
	c.submitted = id
	c.mu.Unlock()
	c.logger.Info("project submitted", "project_id", id.String(), "editing", c.editing)

	if !c.editing {
		c.discard(ctx, d.ServerDraftID)
	}
	return id, nil
}

// Cancel abandons the wizard: the local snapshot and server draft are
// deleted and the controller returns to an empty step 1.
func (c *Controller) Cancel(ctx context.Context) error {
	d := c.Draft()
	if !c.editing {
		c.discard(ctx, d.ServerDraftID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = domain.Draft{}
	c.step, c.maxReached = domain.FirstStep, domain.FirstStep
	c.logger.Info("wizard cancelled")
	return nil
}

// discard removes the local and server copies. Failures are logged only:
// a stale copy is harmless and must not mask the outcome.
func (c *Controller) discard(ctx context.Context, serverDraftID string) {
	if c.store != nil {
		if err := c.store.ClearDraft(ctx); err != nil {
			c.logger.Warn("clear draft", "error", err)
		}
	}
	if c.remote != nil && serverDraftID != "" {
		if err := c.remote.DiscardDraft(ctx, serverDraftID); err != nil {
			c.logger.Warn("discard server draft", "draft_id", serverDraftID, "error", err)
		}
	}
}

// gatewayDrafts adapts the project gateway to RemoteDrafts.
type gatewayDrafts struct {
	gw domain.ProjectGateway
}

// NewGatewayDrafts stores server drafts through the project gateway.
func NewGatewayDrafts(gw domain.ProjectGateway) RemoteDrafts {
	return gatewayDrafts{gw: gw}
}

func (g gatewayDrafts) SaveDraft(ctx context.Context, snap domain.Snapshot) (string, error) {
	resp, err := g.gw.SaveWizardStep(ctx, domain.SaveStepRequest{
		DraftID: snap.Data.ServerDraftID,
		Step:    snap.Step,
		Data:    snap.Data,
	})
	if err != nil {
		return "", fmt.Errorf("save wizard step: %w", err)
	}
	return resp.DraftID, nil
}

func (g gatewayDrafts) DiscardDraft(ctx context.Context, draftID string) error {
	if draftID == "" {
		return nil
	}
	return g.gw.DeleteWizardDraft(ctx, draftID)
}
