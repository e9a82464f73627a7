package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/domain"
)

func TestUnlockIsIdempotent(t *testing.T) {
	engine, fake := setupTestEngine(t)
	ctx := context.Background()
	sess := loginAndSettle(t, engine, fake, "alice")

	require.NoError(t, engine.Achievements.Unlock(ctx, sess, domain.AchStationSubmit))
	first := engine.Profile.Profile(sess).Achievements[domain.AchStationSubmit]
	assert.Equal(t, 1, toastsOfType(engine, domain.ToastAchievement))

	fake.Advance(time.Hour)
	require.NoError(t, engine.Achievements.Unlock(ctx, sess, domain.AchStationSubmit))

	profile := engine.Profile.Profile(sess)
	assert.Len(t, profile.Achievements, 1)
	assert.Equal(t, first.UnlockedAt, profile.Achievements[domain.AchStationSubmit].UnlockedAt,
		"unlock timestamp is set once, never overwritten")
	assert.Zero(t, toastsOfType(engine, domain.ToastAchievement), "no second toast")
}

func TestEvaluateToleratesEveryTick(t *testing.T) {
	engine, fake := setupTestEngine(t)
	ctx := context.Background()
	sess := loginAndSettle(t, engine, fake, "alice")

	require.NoError(t, engine.Session.SelectStation(ctx, sess, testStation(engine, sess, 0)))
	fake.Advance(2 * time.Second)

	// first_listen unlocks on the second tick.
	assert.True(t, engine.Profile.Profile(sess).HasUnlocked(domain.AchFirstListen))
	assert.Equal(t, 1, toastsOfType(engine, domain.ToastAchievement))

	// 28 further per-tick evaluations: the original toast expires and no
	// re-unlock pushes a fresh one.
	fake.Advance(28 * time.Second)
	assert.Zero(t, toastsOfType(engine, domain.ToastAchievement))
	assert.Len(t, engine.Profile.Profile(sess).Achievements, 1)
}

func TestCuratorOnFirstFavorite(t *testing.T) {
	engine, fake := setupTestEngine(t)
	ctx := context.Background()
	sess := loginAndSettle(t, engine, fake, "alice")
	station := testStation(engine, sess, 0)

	added, err := engine.Stations.ToggleFavorite(ctx, sess, station.StreamURL)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, engine.Profile.Profile(sess).HasUnlocked(domain.AchCurator))

	// Removing the favorite never revokes the unlock.
	_, err = engine.Stations.ToggleFavorite(ctx, sess, station.StreamURL)
	require.NoError(t, err)
	assert.True(t, engine.Profile.Profile(sess).HasUnlocked(domain.AchCurator))
}

func TestPartyStarter(t *testing.T) {
	engine, fake := setupTestEngine(t)
	ctx := context.Background()
	sess := loginAndSettle(t, engine, fake, "alice")

	engine.Achievements.SetPartyMode(ctx, sess, true)
	assert.True(t, engine.Profile.Profile(sess).HasUnlocked(domain.AchPartyStarter))

	engine.Achievements.SetPartyMode(ctx, sess, false)
	assert.False(t, engine.Achievements.PartyMode())
	assert.True(t, engine.Profile.Profile(sess).HasUnlocked(domain.AchPartyStarter))
}

func TestHourWindowAchievementsOnlyOnTick(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want domain.AchievementID
	}{
		{"night owl at 2am", 2, domain.AchNightOwl},
		{"early bird at 6am", 6, domain.AchEarlyBird},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, fake := setupTestEngineAt(t, time.Date(2026, 3, 11, tt.hour, 0, 0, 0, time.UTC))
			ctx := context.Background()

			sess, err := engine.Login(ctx, "alice")
			require.NoError(t, err)

			// Selecting alone evaluates the stats predicates, not the
			// hour windows.
			require.NoError(t, engine.Session.SelectStation(ctx, sess, testStation(engine, sess, 0)))
			assert.False(t, engine.Profile.Profile(sess).HasUnlocked(tt.want))

			fake.Advance(time.Second)
			assert.True(t, engine.Profile.Profile(sess).HasUnlocked(tt.want))
		})
	}
}

// setupTestEngineAt is setupTestEngine with a chosen start time.
func setupTestEngineAt(t *testing.T, start time.Time) (*Engine, *clock.Fake) {
	t.Helper()
	engine, fake := setupTestEngine(t)
	fake.Advance(start.Sub(fake.Now()))
	return engine, fake
}
