package service

import (
	"context"
	"log/slog"

	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/recommend"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// Engine is the facade the UI layer talks to. It bundles the services and
// owns the session lifecycle transitions that touch several of them at
// once (login, logout, shutdown).
type Engine struct {
	Profile      *ProfileService
	Session      *SessionService
	Stats        *StatsService
	Points       *PointsService
	Achievements *AchievementService
	Alarm        *AlarmService
	Votes        *VoteService
	Stations     *StationService
	Recommend    *recommend.Service
	Notify       *notify.Queue

	store  *store.Store
	logger *slog.Logger
}

// NewEngine assembles the facade from already wired services.
func NewEngine(
	profile *ProfileService,
	session *SessionService,
	stats *StatsService,
	points *PointsService,
	achievements *AchievementService,
	alarm *AlarmService,
	votes *VoteService,
	stations *StationService,
	rec *recommend.Service,
	q *notify.Queue,
	st *store.Store,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		Profile:      profile,
		Session:      session,
		Stats:        stats,
		Points:       points,
		Achievements: achievements,
		Alarm:        alarm,
		Votes:        votes,
		Stations:     stations,
		Recommend:    rec,
		Notify:       q,
		store:        st,
		logger:       logger,
	}
}

// Login signs a user in, restores their persisted state, and re-arms
// their alarm against a freshly derived fire time.
func (e *Engine) Login(ctx context.Context, username string) (domain.Session, error) {
	sess, err := e.Profile.Login(ctx, username)
	if err != nil {
		return domain.Session{}, err
	}
	e.Alarm.Resync(ctx, sess)
	return sess, nil
}

// Resume restores the session recorded before the last shutdown, if any.
func (e *Engine) Resume(ctx context.Context) (domain.Session, error) {
	sess, err := e.Profile.Resume(ctx)
	if err != nil || sess.Anonymous() {
		return sess, err
	}
	e.Alarm.Resync(ctx, sess)
	return sess, nil
}

// Logout stops the listening session, cancels the alarm timer, and
// resets in-memory state to anonymous defaults. The user's persisted
// namespace is retained for their next login.
func (e *Engine) Logout(ctx context.Context, sess domain.Session) error {
	e.Session.Clear(ctx, sess)
	e.Alarm.Shutdown()
	e.Points.ResetCycle()
	return e.Profile.Logout(ctx, sess)
}

// Close shuts down timers and the store. The engine is unusable after.
func (e *Engine) Close() error {
	e.Session.Clear(context.Background(), e.Profile.Current())
	e.Alarm.Shutdown()
	return e.store.Close()
}
