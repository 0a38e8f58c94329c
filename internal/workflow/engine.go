package workflow

import (
	"context"
	"fmt"
	"strings"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

// WriteHook is told the kind of every resource write that succeeded.
type WriteHook func(kind domain.Kind)

type Option func(*options)

type options struct {
	strict bool
	hooks  []WriteHook
}

// WithStrictTransitions freezes records in a terminal status.
func WithStrictTransitions(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

func WithWriteHook(h WriteHook) Option {
	return func(o *options) { o.hooks = append(o.hooks, h) }
}

// Engine runs the create/review/submit lifecycle of one content domain.
// R and A are pointer record types such as *domain.Event and *domain.EventRegistration.
type Engine[R domain.Resource, A domain.Action] struct {
	def  Definition
	repo repository.WorkflowRepository[R, A]
	opts options
}

func NewEngine[R domain.Resource, A domain.Action](def Definition, repo repository.WorkflowRepository[R, A], opts ...Option) *Engine[R, A] {
	e := &Engine[R, A]{def: def, repo: repo}
	for _, opt := range opts {
		opt(&e.opts)
	}
	return e
}

func (e *Engine[R, A]) Definition() Definition { return e.def }

func (e *Engine[R, A]) method(name string) string {
	return string(e.def.Kind) + "Engine." + name
}

func (e *Engine[R, A]) notify() {
	for _, h := range e.opts.hooks {
		h(e.def.Kind)
	}
}

// CreateResource defaults the status, stamps the owner and persists r.
// actorID is nil for anonymous callers.
func (e *Engine[R, A]) CreateResource(ctx context.Context, actorID *int64, r R) error {
	method := e.method("CreateResource")
	logger.EnterMethod(method)

	if d, ok := any(r).(domain.Defaulter); ok {
		d.ApplyDefaults()
	}
	meta := r.Core()
	if meta.Status == "" {
		meta.Status = e.def.InitialStatus
	}
	if err := e.checkResource(r); err != nil {
		logger.ExitMethodWithError(method, err)
		return err
	}
	meta.ID = 0
	meta.CreatedBy = actorID

	if err := e.repo.Create(ctx, r); err != nil {
		logger.ExitMethodWithError(method, err)
		return fmt.Errorf("create %s: %w", e.def.Kind, err)
	}
	e.notify()
	logger.ExitMethod(method, "id", meta.ID, "status", meta.Status)
	return nil
}

func (e *Engine[R, A]) checkResource(r R) error {
	if s := r.Core().Status; !e.def.HasStatus(s) {
		return domain.NewValidationError("status", fmt.Sprintf("%q is not a valid choice", s))
	}
	return domain.Validate(r)
}

func (e *Engine[R, A]) GetResource(ctx context.Context, id int64) (R, error) {
	return e.repo.GetByID(ctx, id)
}

// ListResources filters by exact status when status is non-empty.
func (e *Engine[R, A]) ListResources(ctx context.Context, status domain.Status) ([]R, error) {
	return e.repo.List(ctx, status)
}

// UpdateResource replaces the descriptive fields of an existing resource.
// Identity, owner and creation time always come from the stored row.
func (e *Engine[R, A]) UpdateResource(ctx context.Context, id int64, r R) error {
	method := e.method("UpdateResource")
	logger.EnterMethod(method, "id", id)

	existing, err := e.repo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError(method, err, "id", id)
		return err
	}
	meta, old := r.Core(), existing.Core()
	meta.ID = old.ID
	meta.CreatedBy = old.CreatedBy
	meta.CreatedAt = old.CreatedAt
	if meta.Status == "" {
		meta.Status = old.Status
	}
	if err := e.checkResource(r); err != nil {
		logger.ExitMethodWithError(method, err, "id", id)
		return err
	}

	if err := e.repo.Update(ctx, r); err != nil {
		logger.ExitMethodWithError(method, err, "id", id)
		return fmt.Errorf("update %s %d: %w", e.def.Kind, id, err)
	}
	e.notify()
	logger.ExitMethod(method, "id", id)
	return nil
}

// DeleteResource removes the resource and, through the store, its actions.
func (e *Engine[R, A]) DeleteResource(ctx context.Context, id int64) error {
	if err := e.repo.Delete(ctx, id); err != nil {
		return err
	}
	e.notify()
	logger.Info("Resource deleted", "kind", e.def.Kind, "id", id)
	return nil
}

// TransitionResource overwrites the status. Any source status is accepted
// unless strict transitions are on and the record is terminal.
func (e *Engine[R, A]) TransitionResource(ctx context.Context, id int64, t domain.Transition) (R, error) {
	method := e.method("TransitionResource")
	logger.EnterMethod(method, "id", id, "transition", t)

	var zero R
	to, ok := e.def.ResourceTransitions[t]
	if !ok {
		return zero, fmt.Errorf("%s has no %q transition: %w", e.def.Kind, t, domain.ErrNotFound)
	}
	if e.opts.strict {
		current, err := e.repo.GetByID(ctx, id)
		if err != nil {
			logger.ExitMethodWithError(method, err, "id", id)
			return zero, err
		}
		if from := current.Core().Status; !allowed(from, to, true) {
			err := domain.NewValidationError("status", fmt.Sprintf("cannot %s a %s record", t, from))
			logger.ExitMethodWithError(method, err, "id", id)
			return zero, err
		}
	}

	r, err := e.repo.SetStatus(ctx, id, to)
	if err != nil {
		logger.ExitMethodWithError(method, err, "id", id)
		return zero, err
	}
	e.notify()
	logger.ExitMethod(method, "id", id, "status", to)
	return r, nil
}

// SubmitAction attaches a to the resource and stores it as pending.
func (e *Engine[R, A]) SubmitAction(ctx context.Context, resourceID int64, a A) error {
	method := e.method("SubmitAction")
	logger.EnterMethod(method, "resourceID", resourceID)

	if _, err := e.repo.GetByID(ctx, resourceID); err != nil {
		logger.ExitMethodWithError(method, err, "resourceID", resourceID)
		return err
	}
	sub := a.Core()
	sub.ID = 0
	sub.Status = domain.StatusPending
	sub.Email = strings.TrimSpace(sub.Email)
	a.SetParentID(resourceID)

	if err := domain.Validate(a); err != nil {
		logger.ExitMethodWithError(method, err, "resourceID", resourceID)
		return err
	}
	if !e.def.PhoneOptional && strings.TrimSpace(sub.Phone) == "" {
		err := domain.NewValidationError("phone", "this field is required")
		logger.ExitMethodWithError(method, err, "resourceID", resourceID)
		return err
	}

	if err := e.repo.CreateAction(ctx, a); err != nil {
		logger.ExitMethodWithError(method, err, "resourceID", resourceID)
		return fmt.Errorf("submit %s action: %w", e.def.Kind, err)
	}
	logger.ExitMethod(method, "resourceID", resourceID, "actionID", sub.ID)
	return nil
}

// ListActions returns the actions of one resource, newest first.
func (e *Engine[R, A]) ListActions(ctx context.Context, resourceID int64) ([]A, error) {
	if _, err := e.repo.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	return e.repo.ListActions(ctx, resourceID)
}

// ListActionsByEmail matches the submitter email without regard to case.
func (e *Engine[R, A]) ListActionsByEmail(ctx context.Context, email string) ([]A, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "email parameter is required")
	}
	return e.repo.ListActionsByEmail(ctx, email)
}

// TransitionAction overwrites the status of an action that belongs to resourceID.
func (e *Engine[R, A]) TransitionAction(ctx context.Context, resourceID, actionID int64, t domain.Transition) (A, error) {
	method := e.method("TransitionAction")
	logger.EnterMethod(method, "resourceID", resourceID, "actionID", actionID, "transition", t)

	var zero A
	to, ok := e.def.ActionTransitions[t]
	if !ok {
		return zero, fmt.Errorf("%s actions have no %q transition: %w", e.def.Kind, t, domain.ErrNotFound)
	}
	current, err := e.repo.GetAction(ctx, resourceID, actionID)
	if err != nil {
		logger.ExitMethodWithError(method, err, "actionID", actionID)
		return zero, err
	}
	if from := current.Core().Status; !allowed(from, to, e.opts.strict) {
		err := domain.NewValidationError("status", fmt.Sprintf("cannot %s a %s record", t, from))
		logger.ExitMethodWithError(method, err, "actionID", actionID)
		return zero, err
	}

	a, err := e.repo.SetActionStatus(ctx, actionID, to)
	if err != nil {
		logger.ExitMethodWithError(method, err, "actionID", actionID)
		return zero, err
	}
	logger.ExitMethod(method, "actionID", actionID, "status", to)
	return a, nil
}
