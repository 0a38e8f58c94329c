package http

import (
	"context"
	"net/http"

	"unimitr-backend/internal/cache"
	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/workflow"

	"github.com/gorilla/mux"
)

// actionRoutes names the URL segments and response keys of one domain's action records.
type actionRoutes struct {
	collection string // GET /{id}/<collection>/ and transitions beneath it
	submit     string // POST /{id}/<submit>/
	mine       string // GET /<mine>/?email=
	idKey      string // submit response key holding the new id
	itemKey    string // submit response key holding the record
}

var routesByKind = map[domain.Kind]actionRoutes{
	domain.KindEvents:       {"registrations", "register", "my-registrations", "registrationId", "registration"},
	domain.KindClubs:        {"requests", "join", "my-requests", "requestId", "request"},
	domain.KindVolunteering: {"applications", "apply", "my-applications", "applicationId", "application"},
	domain.KindInternships:  {"applications", "apply", "my-applications", "applicationId", "application"},
	domain.KindWorkshops:    {"registrations", "register", "my-registrations", "registrationId", "registration"},
}

// WorkflowHandler serves the REST surface of one content domain.
type WorkflowHandler[R domain.Resource, A domain.Action] struct {
	engine      *workflow.Engine[R, A]
	cache       *cache.Store
	newResource func() R
	newAction   func() A
	routes      actionRoutes
}

func NewWorkflowHandler[R domain.Resource, A domain.Action](engine *workflow.Engine[R, A], store *cache.Store, newResource func() R, newAction func() A) *WorkflowHandler[R, A] {
	return &WorkflowHandler[R, A]{
		engine:      engine,
		cache:       store,
		newResource: newResource,
		newAction:   newAction,
		routes:      routesByKind[engine.Definition().Kind],
	}
}

func (h *WorkflowHandler[R, A]) kind() domain.Kind {
	return h.engine.Definition().Kind
}

// Register mounts the domain under /api/<kind>.
func (h *WorkflowHandler[R, A]) Register(router *mux.Router, mw *AuthMiddleware) {
	kind := h.kind()
	base := "/api/" + string(kind)
	item := base + "/{id:[0-9]+}"

	router.HandleFunc(base, mw.Require(kind, config.OpList, h.List)).Methods(http.MethodGet)
	router.HandleFunc(base, mw.Require(kind, config.OpCreate, h.Create)).Methods(http.MethodPost)
	router.HandleFunc(base+"/"+h.routes.mine, mw.Require(kind, config.OpMyActions, h.Mine)).Methods(http.MethodGet)

	router.HandleFunc(item, mw.Require(kind, config.OpGet, h.Get)).Methods(http.MethodGet)
	router.HandleFunc(item, mw.Require(kind, config.OpUpdate, h.Replace)).Methods(http.MethodPut)
	router.HandleFunc(item, mw.Require(kind, config.OpUpdate, h.Patch)).Methods(http.MethodPatch)
	router.HandleFunc(item, mw.Require(kind, config.OpDelete, h.Delete)).Methods(http.MethodDelete)

	for t := range h.engine.Definition().ResourceTransitions {
		router.HandleFunc(item+"/"+string(t), mw.Require(kind, config.OpTransition, h.transition(t))).Methods(http.MethodPost)
	}

	router.HandleFunc(item+"/"+h.routes.submit, mw.Require(kind, config.OpSubmit, h.Submit)).Methods(http.MethodPost)
	router.HandleFunc(item+"/"+h.routes.collection, mw.Require(kind, config.OpListActions, h.ListActions)).Methods(http.MethodGet)
	for t := range h.engine.Definition().ActionTransitions {
		path := item + "/" + h.routes.collection + "/{aid:[0-9]+}/" + string(t)
		router.HandleFunc(path, mw.Require(kind, config.OpTransitionAction, h.transitionAction(t))).Methods(http.MethodPost)
	}
}

// List serves the unfiltered list from the cache; a status filter always reads the store.
func (h *WorkflowHandler[R, A]) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store, no-cache")

	status := domain.Status(r.URL.Query().Get("status"))
	var (
		list []R
		err  error
	)
	if status == "" {
		list, err = cache.GetOrLoad(r.Context(), h.cache, cache.ListKey(h.kind()), func(ctx context.Context) ([]R, error) {
			return h.engine.ListResources(ctx, "")
		})
	} else {
		list, err = h.engine.ListResources(r.Context(), status)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *WorkflowHandler[R, A]) Create(w http.ResponseWriter, r *http.Request) {
	res := h.newResource()
	if err := decodeJSON(r, res); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.engine.CreateResource(r.Context(), actorID(r.Context()), res); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *WorkflowHandler[R, A]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.engine.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Replace overwrites every descriptive field with the request body.
func (h *WorkflowHandler[R, A]) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res := h.newResource()
	if err := decodeJSON(r, res); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.engine.UpdateResource(r.Context(), id, res); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Patch decodes the body over the stored record, so absent keys keep their value.
func (h *WorkflowHandler[R, A]) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.engine.GetResource(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := decodeJSON(r, res); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.engine.UpdateResource(r.Context(), id, res); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *WorkflowHandler[R, A]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.engine.DeleteResource(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkflowHandler[R, A]) transition(t domain.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		res, err := h.engine.TransitionResource(r.Context(), id, t)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (h *WorkflowHandler[R, A]) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	a := h.newAction()
	if err := decodeJSON(r, a); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.engine.SubmitAction(r.Context(), id, a); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		h.routes.idKey:   a.Core().ID,
		h.routes.itemKey: a,
	})
}

func (h *WorkflowHandler[R, A]) ListActions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.engine.ListActions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *WorkflowHandler[R, A]) transitionAction(t domain.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		aid, err := pathID(r, "aid")
		if err != nil {
			writeError(w, r, err)
			return
		}
		a, err := h.engine.TransitionAction(r.Context(), id, aid, t)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func (h *WorkflowHandler[R, A]) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.engine.ListActionsByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
