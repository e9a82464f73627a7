package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/player"
)

// SessionService owns "which station is active" and emits one tick per
// elapsed second of listening. Idle means no station and no ticker;
// Active means exactly one live ticker for the current station. The
// previous ticker is always stopped before a new one starts, so double
// ticking is impossible by construction.
type SessionService struct {
	stats  *StatsService
	votes  *VoteService
	player player.Player
	clock  clock.Clock
	cfg    config.SessionConfig
	logger *slog.Logger

	// instanceID tags this process's session in logs so overlapping runs
	// against the same store can be told apart.
	instanceID string

	mu         sync.Mutex
	sess       domain.Session
	station    *domain.Station
	nowPlaying *domain.NowPlaying
	ticker     clock.Ticker
}

// NewSessionService creates the session state machine in the Idle state.
func NewSessionService(stats *StatsService, votes *VoteService, p player.Player, c clock.Clock, cfg config.SessionConfig, logger *slog.Logger) *SessionService {
	return &SessionService{
		stats:      stats,
		votes:      votes,
		player:     p,
		clock:      c,
		cfg:        cfg,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

// InstanceID returns this process's session instance identifier.
func (s *SessionService) InstanceID() string {
	return s.instanceID
}

// SelectStation makes a station the active one and starts ticking.
// Re-selecting the current station is a no-op and does not restart the
// timer. Switching stations stops the old ticker before arming the new
// one, discarding any partial second in progress.
func (s *SessionService) SelectStation(ctx context.Context, sess domain.Session, station domain.Station) error {
	s.mu.Lock()
	if s.station != nil && s.station.StreamURL == station.StreamURL && s.sess == sess {
		s.mu.Unlock()
		return nil
	}
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.sess = sess
	st := station
	s.station = &st
	s.nowPlaying = nil
	s.ticker = s.clock.TickerFunc(s.cfg.TickInterval, func() {
		s.tick(sess, st)
	})
	s.mu.Unlock()

	s.logger.Info("station selected",
		"instance", s.instanceID,
		"station", station.Name,
		"username", sess.Username,
	)

	s.player.SelectStation(station)
	s.stats.ApplyStationChange(ctx, sess, station)
	return nil
}

// Clear stops ticking and returns to Idle. The current station and song
// are forgotten.
func (s *SessionService) Clear(ctx context.Context, sess domain.Session) {
	s.mu.Lock()
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.station = nil
	s.nowPlaying = nil
	s.sess = domain.Session{}
	s.mu.Unlock()
}

// OnNowPlayingUpdate receives the player's song metadata report for the
// active station. A nil report clears the current song; a real one seeds
// the community vote entry and the listening history.
func (s *SessionService) OnNowPlayingUpdate(ctx context.Context, np *domain.NowPlaying) {
	s.mu.Lock()
	if s.station == nil {
		s.mu.Unlock()
		return
	}
	s.nowPlaying = np
	sess := s.sess
	stationName := s.station.Name
	s.mu.Unlock()

	if np == nil {
		return
	}
	s.votes.Observe(ctx, sess, *np)
	s.stats.ApplyNowPlaying(ctx, sess, *np, stationName)
}

// Next asks the player for the next station in its list.
func (s *SessionService) Next() {
	s.player.Next()
}

// Previous asks the player for the previous station in its list.
func (s *SessionService) Previous() {
	s.player.Previous()
}

// Station returns a copy of the active station, if any.
func (s *SessionService) Station() (domain.Station, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.station == nil {
		return domain.Station{}, false
	}
	return *s.station, true
}

// NowPlaying returns the current song report, if any.
func (s *SessionService) NowPlaying() (domain.NowPlaying, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nowPlaying == nil {
		return domain.NowPlaying{}, false
	}
	return *s.nowPlaying, true
}

// tick runs once per elapsed listening second on the ticker callback.
// The session and station were captured when the ticker was armed; a
// logout in between makes the fold a no-op downstream.
func (s *SessionService) tick(sess domain.Session, station domain.Station) {
	s.stats.ApplyTick(context.Background(), sess, station)
}
