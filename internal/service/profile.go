package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/ratelimit"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// ProfileService owns the active session and its in-memory profile
// snapshot. Every mutation in the core funnels through Update, which
// serializes read-modify-write against the latest committed snapshot and
// persists write-through - concurrent ticks and metadata events can never
// clobber each other with stale copies.
type ProfileService struct {
	store   *store.Store
	notify  *notify.Queue
	clock   clock.Clock
	logger  *slog.Logger
	logRate *ratelimit.KeyedRateLimiter

	mu      sync.Mutex
	sess    domain.Session
	profile *domain.Profile
}

// NewProfileService creates the profile service in the anonymous state.
func NewProfileService(st *store.Store, q *notify.Queue, c clock.Clock, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:  st,
		notify: q,
		clock:  c,
		logger: logger,
		// Persist failures repeat every tick while the store is down; one
		// log line per record every few seconds is plenty.
		logRate: ratelimit.New(0.2, 1),
		profile: domain.NewProfile(),
	}
}

// Login loads the namespaced state for username and makes it the active
// session. The identity record is written so the session survives a
// reload.
func (s *ProfileService) Login(ctx context.Context, username string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Session{}, apperrors.Validation("username is required")
	}

	profile, err := s.store.LoadProfile(ctx, username)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load profile: %w", err)
	}

	if err := s.store.SetIdentity(ctx, username); err != nil {
		// The in-memory session still works; only reload continuity is lost.
		s.logger.Error("failed to persist identity", "username", username, "error", err)
	}

	sess := domain.NewSession(username)

	s.mu.Lock()
	s.sess = sess
	s.profile = profile
	streak := profile.Stats.CurrentStreak
	returning := profile.Stats.LastListenDate != "" &&
		profile.Stats.LastListenDate != domain.DateKey(s.clock.Now())
	s.mu.Unlock()

	s.logger.Info("user logged in", "username", username, "streak", streak)

	message := ""
	if returning && streak > 1 {
		message = fmt.Sprintf("You're on a %d-day streak - keep it going!", streak)
	}
	s.notify.Push("Welcome back, "+username, message, domain.ToastInfo)

	return sess, nil
}

// Resume restores the session recorded in the identity record, if any.
// Returns the anonymous session when nobody was signed in.
func (s *ProfileService) Resume(ctx context.Context) (domain.Session, error) {
	username, err := s.store.Identity(ctx)
	if apperrors.Is(err, store.ErrNoIdentity) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("read identity: %w", err)
	}
	return s.Login(ctx, username)
}

// Logout resets in-memory state to anonymous defaults and clears the
// identity record. The user's persisted namespace is retained, so logging
// back in resumes exactly where they left off.
func (s *ProfileService) Logout(ctx context.Context, sess domain.Session) error {
	s.mu.Lock()
	if s.sess != sess {
		s.mu.Unlock()
		return nil
	}
	s.sess = domain.Session{}
	s.profile = domain.NewProfile()
	s.mu.Unlock()

	if err := s.store.ClearIdentity(ctx); err != nil {
		s.logger.Error("failed to clear identity", "error", err)
	}
	s.logger.Info("user logged out", "username", sess.Username)
	return nil
}

// Current returns the active session (anonymous when nobody is signed in).
func (s *ProfileService) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// Profile returns the live snapshot for a session, or fresh defaults for
// the anonymous and stale cases. Callers read only; all mutation goes
// through Update.
func (s *ProfileService) Profile(sess domain.Session) *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.Anonymous() || s.sess != sess {
		return domain.NewProfile()
	}
	return s.profile
}

// Update applies fn to the current snapshot under the single-writer lock,
// then persists each record fn names, write-through. fn returning an
// error aborts with nothing persisted; returning no records commits the
// in-memory change (if any) without touching the store.
//
// Anonymous and stale sessions are silent no-ops: nothing is read,
// mutated, or written.
//
// Persistence failures are logged (rate-limited) and swallowed - the
// session continues on in-memory state and must never stall the tick
// timer on a degraded store.
func (s *ProfileService) Update(ctx context.Context, sess domain.Session, fn func(*domain.Profile) ([]string, error)) error {
	if sess.Anonymous() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess != sess {
		return nil
	}

	records, err := fn(s.profile)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := s.store.SaveRecord(ctx, sess.Username, record, s.profile); err != nil {
			if s.logRate.Allow(record) {
				s.logger.Error("failed to persist record",
					"username", sess.Username,
					"record", record,
					"error", err,
				)
			}
		}
	}
	return nil
}
