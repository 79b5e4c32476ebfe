package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidVisitor is returned for an empty visitor id
var ErrInvalidVisitor = errors.New("store: invalid visitor id")

// Visitor bundles the state containers of one browser
type Visitor struct {
	ID    string
	Cart  *Cart
	Auth  *Auth
	Inbox *Inbox
}

// RegistryOptions names the storage keys used for each visitor
type RegistryOptions struct {
	CartKey    string
	SessionKey string
	// IdleTTL is how long a visitor may go untouched before EvictIdle drops
	// it from memory; zero keeps visitors forever
	IdleTTL time.Duration
}

type registryEntry struct {
	visitor  *Visitor
	lastSeen atomic.Int64 // unix nanos
}

func (e *registryEntry) touch(now time.Time) {
	e.lastSeen.Store(now.UnixNano())
}

// Registry hands out one Visitor per visitor id.
// A visitor's snapshots are read from the backend when it is first used and
// again after it has been evicted for idleness; concurrent loads of the same
// visitor share a single read.
type Registry struct {
	backend Backend
	opts    RegistryOptions
	log     *zap.Logger

	mu       sync.RWMutex
	visitors map[string]*registryEntry
	group    singleflight.Group
}

// NewRegistry creates a registry over backend
func NewRegistry(backend Backend, opts RegistryOptions, log *zap.Logger) *Registry {
	if opts.CartKey == "" {
		opts.CartKey = DefaultCartKey
	}
	if opts.SessionKey == "" {
		opts.SessionKey = DefaultSessionKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		backend:  backend,
		opts:     opts,
		log:      log,
		visitors: make(map[string]*registryEntry),
	}
}

// NewVisitorID returns a fresh random visitor id
func NewVisitorID() string {
	return uuid.NewString()
}

// Get returns the visitor for id, loading it from storage if it is not in memory
func (r *Registry) Get(ctx context.Context, id string) (*Visitor, error) {
	if id == "" {
		return nil, ErrInvalidVisitor
	}

	r.mu.RLock()
	e, ok := r.visitors[id]
	r.mu.RUnlock()
	if ok {
		e.touch(time.Now())
		return e.visitor, nil
	}

	// One caller giving up must not abort a load other callers are waiting on.
	loadCtx := context.WithoutCancel(ctx)
	res, err, _ := r.group.Do(id, func() (interface{}, error) {
		r.mu.RLock()
		existing, ok := r.visitors[id]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		e := &registryEntry{visitor: r.load(loadCtx, id)}
		e.touch(time.Now())

		r.mu.Lock()
		r.visitors[id] = e
		r.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	e = res.(*registryEntry)
	e.touch(time.Now())
	return e.visitor, nil
}

// Len returns the number of visitors held in memory
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.visitors)
}

// EvictIdle drops visitors not used within IdleTTL of now and returns how
// many were dropped. Their state stays in storage and is reloaded on next use.
func (r *Registry) EvictIdle(now time.Time) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.opts.IdleTTL).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, e := range r.visitors {
		if e.lastSeen.Load() < cutoff {
			delete(r.visitors, id)
			evicted++
		}
	}
	return evicted
}

// Run calls EvictIdle every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.opts.IdleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.EvictIdle(now); n > 0 {
				r.log.Debug("evicted idle visitors", zap.Int("evicted", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}

func (r *Registry) load(ctx context.Context, id string) *Visitor {
	storage := Scope(r.backend, id)
	log := r.log.With(zap.String("visitor_id", id))
	inbox := &Inbox{}

	r.log.Debug("loading visitor", zap.String("visitor_id", id))
	return &Visitor{
		ID:    id,
		Cart:  LoadCart(ctx, storage, r.opts.CartKey, inbox, log),
		Auth:  LoadAuth(ctx, storage, r.opts.SessionKey, log),
		Inbox: inbox,
	}
}
