package composer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/swapnilyadv/CloneX/internal/notify"
	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

// FailureTitle is the notification title for any failed submission.
const FailureTitle = "Error"

// AuthProvider reports the signed-in user for a request.
type AuthProvider interface {
	CurrentUser(ctx context.Context) (string, bool)
}

// ProjectCreator persists a new project.
type ProjectCreator interface {
	Create(ctx context.Context, ownerID string, req domain.CreateProjectRequest) (*domain.Project, error)
}

// Draft is a point-in-time copy of a composer's state.
type Draft struct {
	Prompt      string
	Model       domain.Model
	Attachments []Attachment
	InFlight    bool
	CanSubmit   bool
}

// Composer accumulates one user's draft and submits it as a single project.
//
// At most one submission runs at a time. The in-flight flag is raised under
// the lock before the store is called, so two racing Submit calls cannot both
// reach the store. Edits remain possible while a submission is in flight.
type Composer struct {
	mu       sync.Mutex
	prompt   string
	model    domain.Model
	registry *Registry
	inFlight bool

	auth     AuthProvider
	store    ProjectCreator
	notifier notify.Notifier
}

// New returns a blank composer with the default model selected.
func New(auth AuthProvider, store ProjectCreator, notifier notify.Notifier) *Composer {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Composer{
		model:    domain.DefaultModel,
		registry: NewRegistry(),
		auth:     auth,
		store:    store,
		notifier: notifier,
	}
}

func (c *Composer) SetPrompt(text string) {
	c.mu.Lock()
	c.prompt = text
	c.mu.Unlock()
}

// SetModel selects a model. The choice is checked at submit time.
func (c *Composer) SetModel(m domain.Model) {
	c.mu.Lock()
	c.model = m
	c.mu.Unlock()
}

// Attach stages an attachment at the end of the draft.
func (c *Composer) Attach(p Payload, displayName string) Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Add(p, displayName)
}

// Detach removes a staged attachment; unknown ids are ignored.
func (c *Composer) Detach(id string) {
	c.mu.Lock()
	c.registry.Remove(id)
	c.mu.Unlock()
}

// CanSubmit reports whether the draft may be sent now.
func (c *Composer) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Composer) canSubmitLocked() bool {
	return strings.TrimSpace(c.prompt) != "" && !c.inFlight
}

// InFlight reports whether a submission is currently outstanding.
func (c *Composer) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Composer) Snapshot() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Draft{
		Prompt:      c.prompt,
		Model:       c.model,
		Attachments: c.registry.List(),
		InFlight:    c.inFlight,
		CanSubmit:   c.canSubmitLocked(),
	}
}

// Reset discards the draft. It has no effect while a submission is in flight.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return
	}
	c.prompt = ""
	c.model = domain.DefaultModel
	c.registry.Clear()
}

// Submit persists the draft and returns the new project's id.
//
// ErrSubmissionInFlight and ErrEmptyPrompt are returned without touching the
// draft or the store. Every other failure leaves the draft exactly as it was,
// is reported through the notifier, and is returned as a typed error. On
// success the prompt and attachments are cleared before Submit returns.
//
// A submission cannot be cancelled once started: ctx supplies the caller's
// values, but its cancellation does not reach the store or the notifier.
func (c *Composer) Submit(ctx context.Context) (projectID string, err error) {
	ctx = context.WithoutCancel(ctx)

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	if strings.TrimSpace(c.prompt) == "" {
		c.mu.Unlock()
		return "", ErrEmptyPrompt
	}

	userID, ok := c.auth.CurrentUser(ctx)
	if !ok || userID == "" {
		c.mu.Unlock()
		c.fail(ctx, "", "You must be signed in to create a project.")
		return "", ErrNotAuthenticated
	}
	if !c.model.Known() {
		model := c.model
		c.mu.Unlock()
		c.fail(ctx, userID, fmt.Sprintf("Model %q is not available.", model))
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownModel, model)
	}

	req := BuildRequest(c.prompt, c.model, c.registry.List())
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[composer] store panic user=%s: %v", userID, r)
			c.mu.Lock()
			c.inFlight = false
			c.mu.Unlock()
			rejected := &StoreRejectedError{Detail: "unexpected error while saving the project"}
			c.fail(ctx, userID, rejected.Detail)
			projectID, err = "", rejected
		}
	}()

	p, storeErr := c.store.Create(ctx, userID, req)
	if storeErr == nil && (p == nil || p.ID == "") {
		storeErr = fmt.Errorf("store returned no project id")
	}

	if storeErr != nil {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()

		rejected := &StoreRejectedError{Detail: storeErr.Error(), Err: storeErr}
		log.Printf("[composer] submit failed user=%s: %v", userID, storeErr)
		c.fail(ctx, userID, rejected.Detail)
		return "", rejected
	}

	c.mu.Lock()
	c.registry.Clear()
	c.prompt = ""
	c.inFlight = false
	c.mu.Unlock()

	log.Printf("[composer] project created user=%s id=%s model=%s attachments=%d", userID, p.ID, req.Model, len(req.Attachments))
	c.notifier.Notify(ctx, notify.Notification{
		UserID: userID,
		Kind:   notify.KindSuccess,
		Title:  "Project created",
		Detail: p.Name,
	})
	return p.ID, nil
}

func (c *Composer) fail(ctx context.Context, userID, detail string) {
	c.notifier.Notify(ctx, notify.Notification{
		UserID: userID,
		Kind:   notify.KindError,
		Title:  FailureTitle,
		Detail: detail,
	})
}
