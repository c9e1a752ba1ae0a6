package composer

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/robfig/cron/v3"

	"github.com/swapnilyadv/CloneX/internal/notify"
)

const (
	defaultMaxSessions = 4096
	defaultIdleTimeout = 2 * time.Hour
	defaultSweepSpec   = "@every 5m"
)

type SessionConfig struct {
	MaxSessions int
	IdleTimeout time.Duration
	SweepSpec   string
}

type session struct {
	composer *Composer
	lastUsed time.Time
}

// Sessions keeps one Composer per user. The least recently used drafts are
// dropped once MaxSessions is reached, and idle drafts are swept on a schedule.
//
// A composer with a submission in flight is never forgotten: when the LRU
// evicts it, or it is discarded, it moves to pinned until the submission ends,
// so the user cannot get a second composer that passes the gate.
type Sessions struct {
	mu     sync.Mutex
	cache  *lru.Cache[string, *session]
	pinned map[string]*session
	cfg    SessionConfig
	now    func() time.Time

	auth     AuthProvider
	store    ProjectCreator
	notifier notify.Notifier
	cron     *cron.Cron
}

func NewSessions(cfg SessionConfig, auth AuthProvider, store ProjectCreator, notifier notify.Notifier) (*Sessions, error) {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.SweepSpec == "" {
		cfg.SweepSpec = defaultSweepSpec
	}
	s := &Sessions{
		pinned:   make(map[string]*session),
		cfg:      cfg,
		now:      time.Now,
		auth:     auth,
		store:    store,
		notifier: notifier,
	}
	cache, err := lru.NewWithEvict[string, *session](cfg.MaxSessions, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

// onEvict runs for both LRU eviction and Remove, always with s.mu held.
func (s *Sessions) onEvict(userID string, sess *session) {
	if sess.composer.InFlight() {
		s.pinned[userID] = sess
	}
}

// For returns the user's composer, creating a blank one if needed.
func (s *Sessions) For(userID string) *Composer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(userID); ok {
		sess.lastUsed = s.now()
		return sess.composer
	}
	if sess, ok := s.pinned[userID]; ok {
		delete(s.pinned, userID)
		if sess.composer.InFlight() {
			sess.lastUsed = s.now()
			s.cache.Add(userID, sess)
			return sess.composer
		}
	}
	sess := &session{
		composer: New(s.auth, s.store, s.notifier),
		lastUsed: s.now(),
	}
	s.cache.Add(userID, sess)
	return sess.composer
}

// Discard drops the user's draft, e.g. on sign-out. A draft that is being
// submitted stays reachable until the submission ends.
func (s *Sessions) Discard(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(userID)
}

// Len counts live drafts, including pinned ones.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len() + len(s.pinned)
}

// Sweep removes drafts idle for longer than IdleTimeout. Drafts with a
// submission in flight are kept. It returns the number removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cfg.IdleTimeout)
	removed := 0
	for _, userID := range s.cache.Keys() {
		sess, ok := s.cache.Peek(userID)
		if !ok {
			continue
		}
		if sess.lastUsed.Before(cutoff) && !sess.composer.InFlight() {
			s.cache.Remove(userID)
			removed++
		}
	}
	for userID, sess := range s.pinned {
		if !sess.composer.InFlight() {
			delete(s.pinned, userID)
			removed++
		}
	}
	return removed
}

// StartSweeper schedules Sweep using the configured cron spec.
func (s *Sessions) StartSweeper() error {
	c := cron.New()
	_, err := c.AddFunc(s.cfg.SweepSpec, func() {
		if n := s.Sweep(); n > 0 {
			log.Printf("[drafts] swept %d idle drafts", n)
		}
	})
	if err != nil {
		return err
	}
	s.cron = c
	c.Start()
	log.Printf("[drafts] sweeper started (%s, idle timeout %s)", s.cfg.SweepSpec, s.cfg.IdleTimeout)
	return nil
}

// StopSweeper stops the scheduled sweep, if running.
func (s *Sessions) StopSweeper() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
