package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/logger"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), logger.Discard().Logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestLoadProfile_DefaultsWhenEmpty(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	profile, err := s.LoadProfile(ctx, "arliss")
	require.NoError(t, err)

	assert.Equal(t, int64(0), profile.Stats.TotalTime)
	assert.NotNil(t, profile.Stats.StationPlays)
	assert.NotNil(t, profile.Stats.SongUserVotes)
	assert.Nil(t, profile.Alarm)
	assert.Empty(t, profile.Favorites)
	assert.Equal(t, domain.DefaultTheme, profile.ActiveTheme)
	assert.Equal(t, []string{domain.DefaultTheme}, profile.UnlockedThemes)
}

func TestSaveRecord_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	profile := domain.NewProfile()
	profile.Stats.TotalTime = 3600
	profile.Stats.Points = 60
	profile.Stats.CurrentStreak = 3
	profile.Stats.MaxStreak = 5
	profile.Stats.GenresPlayed = []string{"jazz", "ambient"}
	profile.Stats.StationPlays["https://stream.one/live"] = &domain.StationPlay{
		Name: "One FM", Genre: "jazz", Time: 3600,
	}
	profile.Favorites = []string{"https://stream.one/live"}
	profile.Alarm = &domain.Alarm{
		Time: "07:00", StationURL: "https://stream.one/live", StationName: "One FM", IsActive: true,
	}
	profile.Achievements[domain.AchOneHour] = domain.UnlockedAchievement{
		ID: domain.AchOneHour, UnlockedAt: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
	}

	for _, record := range []string{
		RecordStats, RecordAlarm, RecordAchievements, RecordFavorites,
	} {
		require.NoError(t, s.SaveRecord(ctx, "arliss", record, profile))
	}

	loaded, err := s.LoadProfile(ctx, "arliss")
	require.NoError(t, err)

	assert.Equal(t, int64(3600), loaded.Stats.TotalTime)
	assert.Equal(t, 60, loaded.Stats.Points)
	assert.Equal(t, 3, loaded.Stats.CurrentStreak)
	assert.Equal(t, 5, loaded.Stats.MaxStreak)
	assert.Equal(t, []string{"jazz", "ambient"}, loaded.Stats.GenresPlayed)
	require.Contains(t, loaded.Stats.StationPlays, "https://stream.one/live")
	assert.Equal(t, int64(3600), loaded.Stats.StationPlays["https://stream.one/live"].Time)
	require.NotNil(t, loaded.Alarm)
	assert.Equal(t, "07:00", loaded.Alarm.Time)
	assert.True(t, loaded.Alarm.IsActive)
	assert.True(t, loaded.HasUnlocked(domain.AchOneHour))
	assert.Equal(t, []string{"https://stream.one/live"}, loaded.Favorites)
}

func TestSaveRecord_NamespaceIsolation(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := domain.NewProfile()
	a.Stats.Points = 99
	require.NoError(t, s.SaveRecord(ctx, "alice", RecordStats, a))

	b, err := s.LoadProfile(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Stats.Points, "bob must not see alice's points")
}

func TestSaveRecord_AnonymousIsNoOp(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	profile := domain.NewProfile()
	profile.Stats.Points = 42
	require.NoError(t, s.SaveRecord(ctx, "", RecordStats, profile))

	// Nothing was written anywhere: a later load under any name is default.
	loaded, err := s.LoadProfile(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Stats.Points)
}

func TestSaveRecord_NilAlarmDeletes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	profile := domain.NewProfile()
	profile.Alarm = &domain.Alarm{Time: "07:00", StationURL: "https://x.example/s", IsActive: true}
	require.NoError(t, s.SaveRecord(ctx, "arliss", RecordAlarm, profile))

	profile.Alarm = nil
	require.NoError(t, s.SaveRecord(ctx, "arliss", RecordAlarm, profile))

	loaded, err := s.LoadProfile(ctx, "arliss")
	require.NoError(t, err)
	assert.Nil(t, loaded.Alarm)
}

func TestIdentity_Lifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Identity(ctx)
	assert.ErrorIs(t, err, ErrNoIdentity)

	require.NoError(t, s.SetIdentity(ctx, "arliss"))

	got, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "arliss", got)

	require.NoError(t, s.ClearIdentity(ctx))
	_, err = s.Identity(ctx)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestClearIdentity_RetainsNamespace(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	profile := domain.NewProfile()
	profile.Stats.TotalTime = 120
	require.NoError(t, s.SetIdentity(ctx, "arliss"))
	require.NoError(t, s.SaveRecord(ctx, "arliss", RecordStats, profile))

	require.NoError(t, s.ClearIdentity(ctx))

	// Logging back in resumes the persisted stats.
	loaded, err := s.LoadProfile(ctx, "arliss")
	require.NoError(t, err)
	assert.Equal(t, int64(120), loaded.Stats.TotalTime)
}

func TestNewInMemory(t *testing.T) {
	s, err := NewInMemory(logger.Discard().Logger)
	require.NoError(t, err)
	defer s.Close()

	profile := domain.NewProfile()
	profile.Stats.Points = 7
	require.NoError(t, s.SaveRecord(context.Background(), "u", RecordStats, profile))

	loaded, err := s.LoadProfile(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Stats.Points)
}
