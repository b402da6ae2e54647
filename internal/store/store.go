// Package store holds client-side state for the context-manager UI: the context
// list, the selected context and the last combined-memory result, together with
// loading flags and a shared error slot.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/go-ports/ctxmanager/internal/api"
	"github.com/go-ports/ctxmanager/internal/models"
)

// API is the subset of the REST client the store depends on.
type API interface {
	ListContexts(ctx context.Context) ([]models.Context, error)
	GetContext(ctx context.Context, id string) (*models.Context, error)
	CombinedMemory(ctx context.Context, id string, q api.MemoryQuery) (*models.CombinedMemory, error)
}

// State is a snapshot of the store.
type State struct {
	Contexts       []models.Context
	CurrentContext *models.Context
	CombinedMemory *models.CombinedMemory
	Loading        bool
	MemoryLoading  bool
	Error          string
}

// Store is safe for concurrent use. Requests run outside the lock, so
// concurrent fetches of the same kind resolve last-writer-wins.
type Store struct {
	api      API
	recorder Recorder

	mu    sync.Mutex
	state State
	err   error

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithRecorder sets the diagnostics sink. The default is LogRecorder{}.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// New returns an empty Store backed by client.
func New(client API, opts ...Option) *Store {
	s := &Store{
		api:      client,
		recorder: LogRecorder{},
		state:    State{Contexts: make([]models.Context, 0)},
		subs:     make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Err returns the typed error behind State().Error: a *FetchError, a
// *QueryError, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SortedContexts returns a copy of the contexts ordered by created_at, newest first.
func (s *Store) SortedContexts() []models.Context {
	s.mu.Lock()
	contexts := s.state.Contexts
	s.mu.Unlock()
	return models.SortByCreatedDesc(contexts)
}

// Subscribe registers fn to be called with a snapshot after every state
// change. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// FetchContexts replaces the context list with the server's. On failure the
// previous list is kept and the error is recorded.
func (s *Store) FetchContexts(ctx context.Context) {
	_, _ = s.LoadContexts(ctx)
}

// LoadContexts is FetchContexts that also returns the list this call fetched
// and its own *FetchError, independent of what concurrent operations leave in
// the shared error slot.
func (s *Store) LoadContexts(ctx context.Context) ([]models.Context, error) {
	s.update(func(st *State) {
		st.Loading = true
		s.setErr(nil)
	})

	contexts, err := s.api.ListContexts(ctx)

	var failure, cause error
	s.update(func(st *State) {
		defer func() { st.Loading = false }()
		if err != nil {
			failure = &FetchError{Op: "fetch_contexts", Message: msgListFailed, Err: err}
			cause = s.fail(failure)
			return
		}
		if contexts == nil {
			contexts = make([]models.Context, 0)
		}
		st.Contexts = contexts
	})
	s.record("fetch_contexts", cause)
	if failure != nil {
		return nil, failure
	}
	return slices.Clone(contexts), nil
}

// FetchContextDetail loads one context, stores it as the current context and
// returns it. It returns nil on failure and leaves the current context as is.
func (s *Store) FetchContextDetail(ctx context.Context, id string) *models.Context {
	detail, _ := s.LoadContextDetail(ctx, id)
	return detail
}

// LoadContextDetail is FetchContextDetail returning this call's *FetchError.
func (s *Store) LoadContextDetail(ctx context.Context, id string) (*models.Context, error) {
	s.update(func(st *State) {
		st.Loading = true
		s.setErr(nil)
	})

	detail, err := s.api.GetContext(ctx, id)

	var failure, cause error
	s.update(func(st *State) {
		defer func() { st.Loading = false }()
		if err != nil {
			failure = &FetchError{Op: "fetch_context_detail", Message: msgDetailFailed, Err: err}
			cause = s.fail(failure)
			detail = nil
			return
		}
		st.CurrentContext = detail
	})
	s.record("fetch_context_detail", cause)
	return detail, failure
}

// MemoryOption adjusts a combined-memory request.
type MemoryOption func(*api.MemoryQuery)

// WithParent includes parent-context memory up to maxDepth levels.
func WithParent(maxDepth int) MemoryOption {
	return func(q *api.MemoryQuery) {
		q.IncludeParent = true
		q.MaxDepth = maxDepth
	}
}

// FetchCombinedMemory queries the combined memory of a context. The previous
// result is cleared before the request is sent. A body carrying an error field
// is a failure whatever the HTTP status; nil is returned in that case.
func (s *Store) FetchCombinedMemory(ctx context.Context, id, query string, summarize bool, opts ...MemoryOption) *models.CombinedMemory {
	mem, _ := s.LoadCombinedMemory(ctx, id, query, summarize, opts...)
	return mem
}

// LoadCombinedMemory is FetchCombinedMemory returning this call's
// *FetchError or *QueryError.
func (s *Store) LoadCombinedMemory(ctx context.Context, id, query string, summarize bool, opts ...MemoryOption) (*models.CombinedMemory, error) {
	q := api.MemoryQuery{Query: query, Summarize: summarize}
	for _, o := range opts {
		o(&q)
	}

	s.update(func(st *State) {
		st.MemoryLoading = true
		s.setErr(nil)
		st.CombinedMemory = nil
	})

	mem, err := s.api.CombinedMemory(ctx, id, q)

	var failure, cause error
	s.update(func(st *State) {
		defer func() { st.MemoryLoading = false }()
		if err != nil {
			failure = &FetchError{Op: "fetch_combined_memory", Message: msgMemoryFailed, Err: err}
			cause = s.fail(failure)
			mem = nil
			return
		}
		if msg := mem.ErrorMessage(); msg != "" {
			failure = &QueryError{ContextID: id, Message: msg}
			cause = s.fail(failure)
			mem = nil
			return
		}
		st.CombinedMemory = mem
	})
	s.record("fetch_combined_memory", cause)
	return mem, failure
}

// ClearCurrentContext drops the current context and any combined memory
// computed for it.
func (s *Store) ClearCurrentContext() {
	s.update(func(st *State) {
		st.CurrentContext = nil
		st.CombinedMemory = nil
	})
}

// ClearCombinedMemory drops the combined-memory result.
func (s *Store) ClearCombinedMemory() {
	s.update(func(st *State) {
		st.CombinedMemory = nil
	})
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// update applies fn under the lock and then notifies subscribers.
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshot()
	s.mu.Unlock()
	s.notify(snap)
}

// setErr must be called with s.mu held.
func (s *Store) setErr(err error) {
	s.err = err
	if err == nil {
		s.state.Error = ""
		return
	}
	s.state.Error = err.Error()
}

// fail stores err in the error slot and returns the cause worth logging.
// Must be called with s.mu held.
func (s *Store) fail(err error) error {
	s.setErr(err)
	var fe *FetchError
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err
	}
	return err
}

func (s *Store) record(op string, cause error) {
	if cause == nil || s.recorder == nil {
		return
	}
	s.recorder.Record(op, cause)
}

func (s *Store) snapshot() State {
	st := s.state
	st.Contexts = slices.Clone(s.state.Contexts)
	return st
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
