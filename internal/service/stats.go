package service

import (
	"context"
	"log/slog"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// StatsService folds the three listening event kinds into ListeningStats.
// Each fold is one read-modify-write against the live snapshot followed by
// a write-through persist, so a reload right after any event reflects it.
type StatsService struct {
	profile      *ProfileService
	points       *PointsService
	achievements *AchievementService
	clock        clock.Clock
	notify       *notify.Queue
	logger       *slog.Logger
}

// NewStatsService creates the aggregator.
func NewStatsService(profile *ProfileService, points *PointsService, achievements *AchievementService, c clock.Clock, q *notify.Queue, logger *slog.Logger) *StatsService {
	return &StatsService{
		profile:      profile,
		points:       points,
		achievements: achievements,
		clock:        c,
		notify:       q,
		logger:       logger,
	}
}

// ApplyStationChange folds a station selection: daily streak bookkeeping
// and the explored-genre set, then an achievement pass for the streak and
// explorer predicates.
func (s *StatsService) ApplyStationChange(ctx context.Context, sess domain.Session, station domain.Station) {
	if sess.Anonymous() {
		return
	}

	var streak int
	_ = s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		p.Stats.TouchDay(s.clock.Now())
		p.Stats.AddGenre(station.PrimaryGenre())
		streak = p.Stats.CurrentStreak
		return []string{store.RecordStats}, nil
	})

	s.logger.Debug("station change folded",
		"username", sess.Username,
		"station", station.Name,
		"streak", streak,
	)
	s.achievements.Evaluate(ctx, sess)
}

// ApplyNowPlaying folds a song metadata change into the history list.
// Placeholder titles and immediate repeats are dropped inside RecordSong.
func (s *StatsService) ApplyNowPlaying(ctx context.Context, sess domain.Session, np domain.NowPlaying, stationName string) {
	if sess.Anonymous() {
		return
	}

	_ = s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if !p.Stats.RecordSong(np, stationName, s.clock.Now()) {
			return nil, nil
		}
		return []string{store.RecordStats}, nil
	})
}

// ApplyTick folds one second of confirmed listening: total time, the
// station's play entry, and the per-minute point award. At most one toast
// comes out of a tick, milestone winning over the periodic one, and the
// achievement pass includes the hour-window predicates.
func (s *StatsService) ApplyTick(ctx context.Context, sess domain.Session, station domain.Station) {
	if sess.Anonymous() {
		return
	}

	var out tickOutcome
	_ = s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		p.Stats.Tick(&station)
		out = s.points.applyTick(p.Stats)
		return []string{store.RecordStats}, nil
	})

	s.points.notifyTick(out)
	s.achievements.EvaluateTick(ctx, sess)
}

// Stats returns the session's current stats snapshot for display.
func (s *StatsService) Stats(sess domain.Session) *domain.ListeningStats {
	return s.profile.Profile(sess).Stats
}
