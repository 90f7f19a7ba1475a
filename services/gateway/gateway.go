// Package gateway is the HTTP front for the Launchpad hiring tools. It
// authenticates recruiters and companies against the upstream μLearn API,
// keeps their tokens server-side in sessions, and serves the job, candidate,
// hire-request, and leaderboard surfaces with reconciled invite state.
package gateway

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"launchpad/pkg/cache"
	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

// Store holds external dependencies required by the gateway handlers.
type Store struct {
	DB    *pgxpool.Pool
	ORM   *gorm.DB
	Redis *redis.Client
	Bus   hiredesk.Publisher
}

// Gateway wires dependencies and configuration for the HTTP handlers.
type Gateway struct {
	store    *Store
	upstream *mulearn.Client
	actions  *hiredesk.Actions
	sessions *sessionStore
	ledgers  *ledgerStore
	cache    *cache.Cache
	config   Config
}

// New initialises the gateway. The cache and bus may be nil; the gateway then
// serves every read from upstream and skips event publishing.
func New(store *Store, upstream *mulearn.Client, responseCache *cache.Cache, cfg Config) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if store.ORM == nil {
		return nil, errors.New("store ORM is required")
	}
	if upstream == nil {
		return nil, errors.New("upstream client is required")
	}

	var invalidator hiredesk.Invalidator
	if responseCache != nil {
		invalidator = responseCache
	}

	actions, err := hiredesk.NewActions(upstream, store.Bus, invalidator)
	if err != nil {
		return nil, err
	}

	return &Gateway{
		store:    store,
		upstream: upstream,
		actions:  actions,
		sessions: newSessionStore(store.ORM, cfg.SessionTTL),
		ledgers:  newLedgerStore(),
		cache:    responseCache,
		config:   cfg,
	}, nil
}

// SweepLedgers drops session ledgers that have been idle longer than the
// configured TTL. Wired to a cron schedule in main.
func (g *Gateway) SweepLedgers() int {
	return g.ledgers.sweep(g.config.LedgerIdleTTL)
}
