package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/logger"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/player"
	"github.com/wavefmapp/wavefm-core/internal/recommend"
	"github.com/wavefmapp/wavefm-core/internal/store"
	"github.com/wavefmapp/wavefm-core/internal/validation"
)

// testStart is midday, clear of the night-owl and early-bird windows.
var testStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testPointsConfig() config.PointsConfig {
	return config.PointsConfig{
		PerMinute:            1,
		MilestoneEvery:       10,
		PeriodicToastSeconds: 300,
		ThemeCost:            50,
		SubmissionCost:       20,
		VoteAward:            1,
	}
}

// setupTestEngine wires the full service graph against an in-memory store
// and a fake clock frozen at testStart.
func setupTestEngine(t *testing.T) (*Engine, *clock.Fake) {
	t.Helper()

	log := logger.Discard()
	fake := clock.NewFake(testStart)

	db, err := store.NewInMemory(log.Logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pointsCfg := testPointsConfig()
	queue := notify.NewQueue(fake, log.Logger, domain.ToastDisplayDuration, domain.ToastExitDuration)
	v := validation.New()
	profile := NewProfileService(db, queue, fake, log.Logger)
	points := NewPointsService(profile, queue, pointsCfg, log.Logger)
	achievements := NewAchievementService(profile, queue, fake, log.Logger)
	stats := NewStatsService(profile, points, achievements, fake, queue, log.Logger)
	votes := NewVoteService(profile, points, rand.New(rand.NewSource(1)), log.Logger)
	session := NewSessionService(stats, votes, player.Noop{}, fake, config.SessionConfig{TickInterval: time.Second}, log.Logger)
	stations := NewStationService(profile, points, achievements, v, queue, pointsCfg, domain.DefaultCatalog(), log.Logger)
	alarm := NewAlarmService(profile, stations, session, v, fake, queue, log.Logger)
	rec := recommend.NewService(nil, log.Logger)

	return NewEngine(profile, session, stats, points, achievements, alarm, votes, stations, rec, queue, db, log.Logger), fake
}

// loginAndSettle signs in and burns through the welcome toast's expiry
// timers so later assertions see a quiet queue.
func loginAndSettle(t *testing.T, engine *Engine, fake *clock.Fake, username string) domain.Session {
	t.Helper()

	sess, err := engine.Login(context.Background(), username)
	require.NoError(t, err)
	fake.Advance(domain.ToastDisplayDuration + domain.ToastExitDuration)
	require.Zero(t, engine.Notify.Len())
	return sess
}

// setStats overwrites the session's stats counters, for scenarios that
// start mid-progression.
func setStats(t *testing.T, engine *Engine, sess domain.Session, mutate func(*domain.ListeningStats)) {
	t.Helper()

	err := engine.Profile.Update(context.Background(), sess, func(p *domain.Profile) ([]string, error) {
		mutate(p.Stats)
		return []string{store.RecordStats}, nil
	})
	require.NoError(t, err)
}

func testStation(engine *Engine, sess domain.Session, i int) domain.Station {
	return engine.Stations.Stations(sess)[i]
}

// toastsOfType counts live toasts of one type.
func toastsOfType(engine *Engine, typ domain.ToastType) int {
	n := 0
	for _, toast := range engine.Notify.Items() {
		if toast.Type == typ {
			n++
		}
	}
	return n
}
