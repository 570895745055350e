// Package wizard holds the per-tab wizard sessions and the step flow that
// moves a session from onboarding to content.
package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
)

type flowFactory interface {
	MountTopics(ctx context.Context, in studio.TopicsInput) *studio.TopicsFlow
	MountContent(ctx context.Context, topicID, clientID string) *studio.ContentFlow
}

type sessionGauge interface {
	SetActiveSessions(n int)
}

// StoreConfig controls session expiry.
type StoreConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// Store owns every live wizard session. It is safe for concurrent use.
type Store struct {
	log    *slog.Logger
	clock  clockwork.Clock
	cfg    StoreConfig
	studio flowFactory
	gauge  sessionGauge

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewStore creates a session store. When cfg.SweepInterval is positive a
// background sweeper removes idle sessions; call Stop on shutdown.
func NewStore(
	log *slog.Logger,
	clock clockwork.Clock,
	cfg StoreConfig,
	studio flowFactory,
	gauge sessionGauge,
) *Store {
	st := &Store{
		log:      log.With("service", "wizard"),
		clock:    clock,
		cfg:      cfg,
		studio:   studio,
		gauge:    gauge,
		sessions: make(map[uuid.UUID]*Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go st.sweepLoop(cfg.SweepInterval)
	} else {
		close(st.done)
	}
	return st
}

// Create starts a new session on the onboarding step. An empty clientID is
// replaced with a generated one.
func (st *Store) Create(clientID string) *Session {
	if clientID == "" {
		clientID = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(context.Background())
	now := st.clock.Now()
	s := &Session{
		ID:        uuid.New(),
		ClientID:  clientID,
		CreatedAt: now,
		ctx:       ctx,
		cancel:    cancel,
		studio:    st.studio,
		lastSeen:  now,
		step:      domain.StepOnboarding,
	}
	s.log = st.log.With(slog.String("session_id", s.ID.String()))

	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	st.reportLen(n)
	s.log.Info("session created", slog.String("client_id", clientID))
	return s
}

// Get returns the session and marks it as recently used.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	if st.expired(s, st.clock.Now()) {
		st.remove(id)
		return nil, domain.ErrNotFound
	}
	s.touch(st.clock.Now())
	return s, nil
}

// Delete tears the session down. Background requests of its flows stop
// committing results.
func (st *Store) Delete(id uuid.UUID) error {
	if !st.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop ends the sweeper and tears down every remaining session.
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		close(st.stop)
		<-st.done

		st.mu.Lock()
		sessions := st.sessions
		st.sessions = make(map[uuid.UUID]*Session)
		st.mu.Unlock()

		for _, s := range sessions {
			s.close()
		}
		st.reportLen(0)
	})
}

func (st *Store) remove(id uuid.UUID) bool {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	n := len(st.sessions)
	st.mu.Unlock()

	if !ok {
		return false
	}
	s.close()
	st.reportLen(n)
	s.log.Info("session closed")
	return true
}

func (st *Store) expired(s *Session, now time.Time) bool {
	if st.cfg.TTL <= 0 {
		return false
	}
	return now.Sub(s.lastUsed()) > st.cfg.TTL
}

// sweep removes idle sessions and returns how many were removed.
func (st *Store) sweep() int {
	now := st.clock.Now()

	st.mu.RLock()
	var stale []uuid.UUID
	for id, s := range st.sessions {
		if st.expired(s, now) {
			stale = append(stale, id)
		}
	}
	st.mu.RUnlock()

	removed := 0
	for _, id := range stale {
		if st.remove(id) {
			removed++
		}
	}
	if removed > 0 {
		st.log.Info("idle sessions expired", slog.Int("count", removed))
	}
	return removed
}

func (st *Store) sweepLoop(interval time.Duration) {
	defer close(st.done)

	ticker := st.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.Chan():
			st.sweep()
		}
	}
}

func (st *Store) reportLen(n int) {
	if st.gauge != nil {
		st.gauge.SetActiveSessions(n)
	}
}
