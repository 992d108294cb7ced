// router.go implements the regional connection router. Connections are opened
// lazily — one per configured region, no matter how many goroutines ask — and
// cached for the life of the process.
package regions

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wms-platform/tenants-admin/internal/db"
	"github.com/wms-platform/tenants-admin/internal/db/repositories"
	"github.com/wms-platform/tenants-admin/internal/telemetry"
)

// Opener dials one regional store. Injectable for tests.
type Opener func(ctx context.Context, dsn string) (*sqlx.DB, error)

// Options tunes router behavior. Zero values fall back to defaults.
type Options struct {
	// DialTimeout bounds the handshake when a regional connection is first
	// opened. Defaults to 5s.
	DialTimeout time.Duration

	// ProbeTimeout bounds each startup reachability probe. Defaults to 5s.
	ProbeTimeout time.Duration

	// Opener overrides how connections are dialed.
	Opener Opener
}

// regionConn is the lazily-opened connection for one region. The sync.Once
// guarantees a single dial even under concurrent first use.
type regionConn struct {
	once sync.Once
	db   *sqlx.DB
	set  *repositories.Set
	err  error
}

// Router resolves region tokens and hands out repository sets bound to the
// matching regional store. An empty token selects the default store.
type Router struct {
	dsns         map[string]string
	dialTimeout  time.Duration
	probeTimeout time.Duration
	open         Opener

	defaultSet *repositories.Set

	mu    sync.Mutex
	conns map[string]*regionConn
}

// NewRouter creates a router over the configured region DSNs. defaultDB is the
// primary store used when no region token is given; the router does not own it
// and never closes it.
func NewRouter(dsns map[string]string, defaultDB *sqlx.DB, opts Options) *Router {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	if opts.Opener == nil {
		opts.Opener = func(ctx context.Context, dsn string) (*sqlx.DB, error) {
			return db.Connect(ctx, dsn, 10, 2)
		}
	}
	return &Router{
		dsns:         dsns,
		dialTimeout:  opts.DialTimeout,
		probeTimeout: opts.ProbeTimeout,
		open:         opts.Opener,
		defaultSet:   repositories.NewSet(defaultDB),
		conns:        make(map[string]*regionConn),
	}
}

// Conn returns the cached connection for the region the token resolves to,
// dialing it on first use.
func (r *Router) Conn(ctx context.Context, token string) (*sqlx.DB, error) {
	conn, err := r.conn(ctx, token)
	if err != nil {
		return nil, err
	}
	return conn.db, nil
}

// conn establishes (or finds) the region's connection and hands back the entry
// itself, so callers never have to re-read the map after a concurrent Close
// may have evicted it.
func (r *Router) conn(ctx context.Context, token string) (*regionConn, error) {
	key := Resolve(token)
	dsn, ok := r.dsns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegionUnsupported, token)
	}

	r.mu.Lock()
	conn, ok := r.conns[key]
	if !ok {
		conn = &regionConn{}
		r.conns[key] = conn
	}
	r.mu.Unlock()

	conn.once.Do(func() {
		dialCtx, cancel := context.WithTimeout(ctx, r.dialTimeout)
		defer cancel()

		conn.db, conn.err = r.open(dialCtx, dsn)
		if conn.err != nil {
			return
		}
		conn.set = repositories.NewSet(conn.db)
		telemetry.RegionalConnectionsOpen.WithLabelValues(key).Inc()
		slog.Info("regional store connected", "region", key)
	})

	if conn.err != nil {
		// Evict the failed attempt so a later call can retry the dial.
		r.mu.Lock()
		if r.conns[key] == conn {
			delete(r.conns, key)
		}
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s: %v", ErrRegionUnreachable, key, conn.err)
	}

	return conn, nil
}

// Repositories returns the repository set for the region the token resolves to.
// An empty token selects the default store.
func (r *Router) Repositories(ctx context.Context, token string) (*repositories.Set, error) {
	if token == "" {
		return r.defaultSet, nil
	}

	conn, err := r.conn(ctx, token)
	if err != nil {
		return nil, err
	}
	return conn.set, nil
}

// ValidateAll probes every configured regional store with a short-lived
// connection and fails on the first region that does not answer. Run once at
// startup; a failure is fatal there.
func (r *Router) ValidateAll(ctx context.Context) error {
	keys := make([]string, 0, len(r.dsns))
	for key := range r.dsns {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
		probe, err := r.open(probeCtx, r.dsns[key])
		cancel()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRegionUnreachable, key, err)
		}
		probe.Close()
		slog.Info("regional store validated", "region", key)
	}

	return nil
}

// Close closes every cached regional connection. The default store belongs to
// the caller and stays open.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, conn := range r.conns {
		if conn.db != nil {
			conn.db.Close()
			telemetry.RegionalConnectionsOpen.WithLabelValues(key).Dec()
		}
		delete(r.conns, key)
	}
}
