package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
	"github.com/wavefmapp/wavefm-core/internal/id"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/store"
	"github.com/wavefmapp/wavefm-core/internal/validation"
)

// StationService owns the station catalog and the user-facing station
// actions: favorites, ratings, submissions, and theme unlocks. The
// catalog is the built-in list plus the user's own submissions, with the
// favorite flag joined in per session.
type StationService struct {
	profile      *ProfileService
	points       *PointsService
	achievements *AchievementService
	validator    *validation.Validator
	notify       *notify.Queue
	cfg          config.PointsConfig
	logger       *slog.Logger

	mu      sync.Mutex
	catalog []domain.Station
}

// NewStationService creates the service around a built-in catalog.
func NewStationService(profile *ProfileService, points *PointsService, achievements *AchievementService, v *validation.Validator, q *notify.Queue, cfg config.PointsConfig, catalog []domain.Station, logger *slog.Logger) *StationService {
	return &StationService{
		profile:      profile,
		points:       points,
		achievements: achievements,
		validator:    v,
		notify:       q,
		cfg:          cfg,
		catalog:      catalog,
		logger:       logger,
	}
}

// Stations lists the catalog plus the session's own submissions, with the
// favorite overlay applied.
func (s *StationService) Stations(sess domain.Session) []domain.Station {
	p := s.profile.Profile(sess)

	s.mu.Lock()
	out := make([]domain.Station, 0, len(s.catalog)+len(p.UserStations))
	out = append(out, s.catalog...)
	s.mu.Unlock()

	out = append(out, p.UserStations...)
	for i := range out {
		out[i].IsFavorite = p.HasFavorite(out[i].StreamURL)
	}
	return out
}

// StationByURL resolves a station by its identity key. User submissions
// are searched after the built-in catalog.
func (s *StationService) StationByURL(sess domain.Session, streamURL string) (domain.Station, bool) {
	s.mu.Lock()
	for _, st := range s.catalog {
		if st.StreamURL == streamURL {
			s.mu.Unlock()
			return st, true
		}
	}
	s.mu.Unlock()

	for _, st := range s.profile.Profile(sess).UserStations {
		if st.StreamURL == streamURL {
			return st, true
		}
	}
	return domain.Station{}, false
}

// ToggleFavorite adds or removes a station from the favorites set and
// reports the new membership. Feeds the curator predicate.
func (s *StationService) ToggleFavorite(ctx context.Context, sess domain.Session, streamURL string) (bool, error) {
	if sess.Anonymous() {
		return false, apperrors.Unauthenticated("sign in to save favorites")
	}
	if streamURL == "" {
		return false, apperrors.Validation("stream url is required")
	}

	var added bool
	err := s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		added = p.ToggleFavorite(streamURL)
		return []string{store.RecordFavorites}, nil
	})
	if err != nil {
		return false, err
	}

	if added {
		s.achievements.Evaluate(ctx, sess)
	}
	return added, nil
}

// Rate records the user's 1-5 rating of a station, overwriting any
// previous rating, and recomputes the station's running average. The
// ratings count grows only when the user had no previous rating.
func (s *StationService) Rate(ctx context.Context, sess domain.Session, streamURL string, rating int) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to rate stations")
	}
	if rating < 1 || rating > 5 {
		return apperrors.Validationf("rating must be 1 to 5, got %d", rating)
	}

	return s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		prev := p.Stats.StationRatings[streamURL]
		where := s.applyRating(streamURL, p.UserStations, prev, rating)
		if where == ratedNone {
			return nil, apperrors.NotFoundf("no station with url %q", streamURL)
		}
		p.Stats.StationRatings[streamURL] = rating
		records := []string{store.RecordStats}
		if where == ratedUserStation {
			records = append(records, store.RecordUserStations)
		}
		return records, nil
	})
}

type ratingTarget int

const (
	ratedNone ratingTarget = iota
	ratedCatalog
	ratedUserStation
)

// applyRating folds one user's rating change into a station's running
// average. The previous rating leaves the total before the new one
// enters, so each user contributes exactly one rating to the sum.
func (s *StationService) applyRating(streamURL string, userStations []domain.Station, prev, rating int) ratingTarget {
	update := func(st *domain.Station) {
		total := st.Rating * float64(st.RatingsCount)
		if prev == 0 {
			st.RatingsCount++
		}
		st.Rating = (total - float64(prev) + float64(rating)) / float64(st.RatingsCount)
	}

	s.mu.Lock()
	for i := range s.catalog {
		if s.catalog[i].StreamURL == streamURL {
			update(&s.catalog[i])
			s.mu.Unlock()
			return ratedCatalog
		}
	}
	s.mu.Unlock()

	for i := range userStations {
		if userStations[i].StreamURL == streamURL {
			update(&userStations[i])
			return ratedUserStation
		}
	}
	return ratedNone
}

// Submit validates a user-submitted station, charges the submission cost,
// and appends it to the user's station list. A successful submission
// unlocks the station_submit achievement.
func (s *StationService) Submit(ctx context.Context, sess domain.Session, station domain.Station) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to submit stations")
	}
	if err := s.validator.Validate(&station); err != nil {
		return err
	}

	station.ID = id.MustGenerate("stn")
	station.IsFavorite = false
	station.Rating = 0
	station.RatingsCount = 0

	err := s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		for _, st := range p.UserStations {
			if st.StreamURL == station.StreamURL {
				return nil, apperrors.AlreadyExists("you already submitted this station")
			}
		}
		if err := s.points.debit(p.Stats, s.cfg.SubmissionCost, "station submission"); err != nil {
			return nil, err
		}
		p.UserStations = append(p.UserStations, station)
		return []string{store.RecordStats, store.RecordUserStations}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("station submitted", "username", sess.Username, "station", station.Name)
	s.notify.Push("Station submitted", station.Name+" is now in your library", domain.ToastSuccess)
	if err := s.achievements.Unlock(ctx, sess, domain.AchStationSubmit); err != nil {
		s.logger.Warn("station submit unlock failed", "error", err)
	}
	return nil
}

// UnlockTheme spends points on a cosmetic theme. Unlocking an owned theme
// is a no-op with no charge.
func (s *StationService) UnlockTheme(ctx context.Context, sess domain.Session, name string) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to unlock themes")
	}
	if name == "" {
		return apperrors.Validation("theme name is required")
	}

	var unlocked bool
	err := s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if p.HasTheme(name) {
			return nil, nil
		}
		if err := s.points.debit(p.Stats, s.cfg.ThemeCost, fmt.Sprintf("theme %q", name)); err != nil {
			return nil, err
		}
		p.UnlockedThemes = append(p.UnlockedThemes, name)
		unlocked = true
		return []string{store.RecordStats, store.RecordThemes}, nil
	})
	if err != nil {
		return err
	}

	if unlocked {
		s.notify.Push("Theme unlocked", name, domain.ToastSuccess)
	}
	return nil
}

// SetActiveTheme switches the active cosmetic. Only unlocked themes can
// be activated.
func (s *StationService) SetActiveTheme(ctx context.Context, sess domain.Session, name string) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to change themes")
	}

	return s.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if !p.HasTheme(name) {
			return nil, apperrors.Validationf("theme %q is not unlocked", name)
		}
		if p.ActiveTheme == name {
			return nil, nil
		}
		p.ActiveTheme = name
		return []string{store.RecordActiveTheme}, nil
	})
}
