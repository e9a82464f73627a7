package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/wavefmapp/wavefm-core/internal/domain"
)

// LoadProfile reads every record in a user's namespace, substituting
// type-correct defaults for anything never persisted. An empty username
// (anonymous) returns pure defaults without touching the database.
func (s *Store) LoadProfile(ctx context.Context, username string) (*domain.Profile, error) {
	profile := domain.NewProfile()
	if username == "" {
		return profile, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	load := func(record string, dest any) error {
		err := s.get(profileKey(username, record), dest)
		if errors.Is(err, ErrRecordNotFound) {
			return nil // keep the default
		}
		return err
	}

	if err := load(RecordStats, profile.Stats); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	profile.Stats.EnsureMaps()

	var alarm domain.Alarm
	err := s.get(profileKey(username, RecordAlarm), &alarm)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		// no alarm ever saved
	case err != nil:
		return nil, fmt.Errorf("load alarm: %w", err)
	default:
		profile.Alarm = &alarm
	}

	if err := load(RecordVotes, &profile.SongVotes); err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}
	if err := load(RecordAchievements, &profile.Achievements); err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	if err := load(RecordFavorites, &profile.Favorites); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if err := load(RecordActiveTheme, &profile.ActiveTheme); err != nil {
		return nil, fmt.Errorf("load active theme: %w", err)
	}
	if err := load(RecordThemes, &profile.UnlockedThemes); err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}
	if err := load(RecordUserStations, &profile.UserStations); err != nil {
		return nil, fmt.Errorf("load user stations: %w", err)
	}

	return profile, nil
}

// SaveRecord persists one logical record from a profile snapshot. Callers
// invoke this immediately after every mutation that must survive reload;
// there is no batching. An empty username is a silent no-op so anonymous
// activity never leaks into storage.
func (s *Store) SaveRecord(ctx context.Context, username, record string, profile *domain.Profile) error {
	if username == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := profileKey(username, record)
	switch record {
	case RecordStats:
		return s.set(key, profile.Stats)
	case RecordAlarm:
		if profile.Alarm == nil {
			return s.delete(key)
		}
		return s.set(key, profile.Alarm)
	case RecordVotes:
		return s.set(key, profile.SongVotes)
	case RecordAchievements:
		return s.set(key, profile.Achievements)
	case RecordFavorites:
		return s.set(key, profile.Favorites)
	case RecordActiveTheme:
		return s.set(key, profile.ActiveTheme)
	case RecordThemes:
		return s.set(key, profile.UnlockedThemes)
	case RecordUserStations:
		return s.set(key, profile.UserStations)
	default:
		return fmt.Errorf("unknown record %q", record)
	}
}

// Identity returns the active username, or ErrNoIdentity when nobody is
// signed in.
func (s *Store) Identity(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var username string
	err := s.get(identityKey, &username)
	if errors.Is(err, ErrRecordNotFound) {
		return "", ErrNoIdentity
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

// SetIdentity records the active username.
func (s *Store) SetIdentity(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set(identityKey, username)
}

// ClearIdentity removes the active-username record. The user's namespace
// is untouched.
func (s *Store) ClearIdentity(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete(identityKey)
}
