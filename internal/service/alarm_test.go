package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
)

func TestAlarmFiresAndDeactivates(t *testing.T) {
	// 06:59:59, armed for 07:00.
	engine, fake := setupTestEngineAt(t, time.Date(2026, 3, 11, 6, 59, 59, 0, time.UTC))
	ctx := context.Background()

	sess, err := engine.Login(ctx, "alice")
	require.NoError(t, err)
	station := testStation(engine, sess, 0)

	require.NoError(t, engine.Alarm.Set(ctx, sess, domain.Alarm{
		Time:        "07:00",
		StationURL:  station.StreamURL,
		StationName: station.Name,
	}))

	fake.Advance(time.Second)

	active, ok := engine.Session.Station()
	require.True(t, ok, "alarm selected a station")
	assert.Equal(t, station.StreamURL, active.StreamURL)

	alarm := engine.Profile.Profile(sess).Alarm
	require.NotNil(t, alarm)
	assert.False(t, alarm.IsActive, "alarm deactivated after firing")
	assert.Equal(t, "07:00", alarm.Time, "settings kept for re-enabling")
}

func TestAlarmRollsToTomorrow(t *testing.T) {
	// 08:00, armed for 07:00: fires tomorrow morning, not instantly.
	engine, fake := setupTestEngineAt(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	sess, err := engine.Login(ctx, "alice")
	require.NoError(t, err)
	station := testStation(engine, sess, 0)

	require.NoError(t, engine.Alarm.Set(ctx, sess, domain.Alarm{
		Time:        "07:00",
		StationURL:  station.StreamURL,
		StationName: station.Name,
	}))

	fake.Advance(22 * time.Hour)
	_, ok := engine.Session.Station()
	assert.False(t, ok, "not due yet")

	fake.Advance(time.Hour)
	_, ok = engine.Session.Station()
	assert.True(t, ok)
}

func TestAlarmDisableCancelsTimer(t *testing.T) {
	engine, fake := setupTestEngineAt(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	sess, err := engine.Login(ctx, "alice")
	require.NoError(t, err)
	station := testStation(engine, sess, 0)

	require.NoError(t, engine.Alarm.Set(ctx, sess, domain.Alarm{
		Time:        "07:00",
		StationURL:  station.StreamURL,
		StationName: station.Name,
	}))
	require.NoError(t, engine.Alarm.Disable(ctx, sess))

	fake.Advance(2 * time.Hour)
	_, ok := engine.Session.Station()
	assert.False(t, ok, "disabled alarm never fires")

	alarm := engine.Profile.Profile(sess).Alarm
	require.NotNil(t, alarm)
	assert.False(t, alarm.IsActive)
	assert.Equal(t, station.StreamURL, alarm.StationURL, "station kept for quick re-enable")
}

func TestAlarmEnableRearms(t *testing.T) {
	engine, fake := setupTestEngineAt(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	sess, err := engine.Login(ctx, "alice")
	require.NoError(t, err)
	station := testStation(engine, sess, 0)

	require.NoError(t, engine.Alarm.Set(ctx, sess, domain.Alarm{
		Time:        "07:00",
		StationURL:  station.StreamURL,
		StationName: station.Name,
	}))
	require.NoError(t, engine.Alarm.Disable(ctx, sess))
	require.NoError(t, engine.Alarm.Enable(ctx, sess))

	fake.Advance(time.Hour)
	_, ok := engine.Session.Station()
	assert.True(t, ok)
}

func TestAlarmResyncOnLogin(t *testing.T) {
	engine, fake := setupTestEngineAt(t, time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC))
	ctx := context.Background()

	sess, err := engine.Login(ctx, "alice")
	require.NoError(t, err)
	station := testStation(engine, sess, 0)

	require.NoError(t, engine.Alarm.Set(ctx, sess, domain.Alarm{
		Time:        "07:00",
		StationURL:  station.StreamURL,
		StationName: station.Name,
	}))

	// Logout cancels the pending timer; logging back in re-derives the
	// fire time from the persisted alarm.
	require.NoError(t, engine.Logout(ctx, sess))
	fake.Advance(30 * time.Minute)
	sess2, err := engine.Login(ctx, "alice")
	require.NoError(t, err)

	alarm := engine.Profile.Profile(sess2).Alarm
	require.NotNil(t, alarm)
	require.True(t, alarm.IsActive)

	fake.Advance(30 * time.Minute)
	active, ok := engine.Session.Station()
	require.True(t, ok)
	assert.Equal(t, station.StreamURL, active.StreamURL)
}

func TestAlarmValidation(t *testing.T) {
	engine, fake := setupTestEngine(t)
	ctx := context.Background()
	sess := loginAndSettle(t, engine, fake, "alice")
	station := testStation(engine, sess, 0)

	err := engine.Alarm.Set(ctx, sess, domain.Alarm{Time: "25:99", StationURL: station.StreamURL})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	err = engine.Alarm.Set(ctx, sess, domain.Alarm{Time: "07:00", StationURL: "https://example.com/nowhere"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	err = engine.Alarm.Set(ctx, domain.Session{}, domain.Alarm{Time: "07:00", StationURL: station.StreamURL})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthenticated))
}
