package gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"launchpad/services/hiredesk"
)

// ledgerStore keeps one invite ledger per session. Ledgers are created lazily
// on first use and dropped by the sweep once the session goes idle.
type ledgerStore struct {
	mu       sync.Mutex
	ledgers  map[uuid.UUID]*hiredesk.Ledger
	lastUsed map[uuid.UUID]time.Time
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		ledgers:  make(map[uuid.UUID]*hiredesk.Ledger),
		lastUsed: make(map[uuid.UUID]time.Time),
	}
}

func (s *ledgerStore) get(sessionID uuid.UUID) *hiredesk.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[sessionID]
	if !ok {
		ledger = hiredesk.NewLedger()
		s.ledgers[sessionID] = ledger
	}
	s.lastUsed[sessionID] = time.Now()
	return ledger
}

func (s *ledgerStore) drop(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, sessionID)
	delete(s.lastUsed, sessionID)
}

// sweep removes ledgers idle for longer than maxIdle and reports how many
// were dropped.
func (s *ledgerStore) sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	dropped := 0
	for id, last := range s.lastUsed {
		if last.Before(cutoff) {
			delete(s.ledgers, id)
			delete(s.lastUsed, id)
			dropped++
		}
	}
	return dropped
}
