package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// AchievementService re-checks the fixed predicate catalog after every
// relevant state change and unlocks each achievement at most once. The
// guard is "already unlocked, skip" - it is safe to call on every tick.
type AchievementService struct {
	profile *ProfileService
	notify  *notify.Queue
	clock   clock.Clock
	logger  *slog.Logger

	mu        sync.Mutex
	partyMode bool
}

// NewAchievementService creates the evaluator.
func NewAchievementService(profile *ProfileService, q *notify.Queue, c clock.Clock, logger *slog.Logger) *AchievementService {
	return &AchievementService{
		profile: profile,
		notify:  q,
		clock:   c,
		logger:  logger,
	}
}

// Evaluate runs the stats-driven predicates. Hour-window predicates are
// excluded; they only fire on ticks.
func (a *AchievementService) Evaluate(ctx context.Context, sess domain.Session) {
	a.evaluate(ctx, sess, false, 0)
}

// EvaluateTick runs the full predicate table, including the hour-window
// predicates, against the clock's local hour.
func (a *AchievementService) EvaluateTick(ctx context.Context, sess domain.Session) {
	a.evaluate(ctx, sess, true, a.clock.Now().Hour())
}

func (a *AchievementService) evaluate(ctx context.Context, sess domain.Session, onTick bool, hour int) {
	if sess.Anonymous() {
		return
	}

	var newly []domain.Achievement
	_ = a.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		in := domain.AchievementInput{
			Stats:         p.Stats,
			FavoriteCount: len(p.Favorites),
			PartyMode:     a.PartyMode(),
			OnTick:        onTick,
			Hour:          hour,
		}
		for _, achID := range domain.EligibleAchievements(in) {
			if meta, ok := a.unlock(p, achID); ok {
				newly = append(newly, meta)
			}
		}
		if len(newly) == 0 {
			return nil, nil
		}
		return []string{store.RecordAchievements}, nil
	})

	a.announce(newly)
}

// Unlock records an achievement outside the predicate table, e.g. the
// station-submission unlock which fires on a successful action rather
// than a stats threshold. Idempotent.
func (a *AchievementService) Unlock(ctx context.Context, sess domain.Session, achID domain.AchievementID) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to earn achievements")
	}
	if _, ok := domain.AchievementByID(achID); !ok {
		return apperrors.Validationf("unknown achievement %q", achID)
	}

	var newly []domain.Achievement
	err := a.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		meta, ok := a.unlock(p, achID)
		if !ok {
			return nil, nil
		}
		newly = append(newly, meta)
		return []string{store.RecordAchievements}, nil
	})

	a.announce(newly)
	return err
}

// unlock inserts a set-once entry. Runs inside a profile update closure.
func (a *AchievementService) unlock(p *domain.Profile, achID domain.AchievementID) (domain.Achievement, bool) {
	if p.HasUnlocked(achID) {
		return domain.Achievement{}, false
	}
	p.Achievements[achID] = domain.UnlockedAchievement{
		ID:         achID,
		UnlockedAt: a.clock.Now(),
	}
	meta, _ := domain.AchievementByID(achID)
	a.logger.Info("achievement unlocked", "id", achID)
	return meta, true
}

func (a *AchievementService) announce(newly []domain.Achievement) {
	for _, meta := range newly {
		a.notify.Push("Achievement unlocked", meta.Icon+" "+meta.Name, domain.ToastAchievement)
	}
}

// PartyMode reports the current party-mode flag.
func (a *AchievementService) PartyMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.partyMode
}

// SetPartyMode flips the party-mode flag. Turning it on while signed in
// feeds the party_starter predicate.
func (a *AchievementService) SetPartyMode(ctx context.Context, sess domain.Session, on bool) {
	a.mu.Lock()
	a.partyMode = on
	a.mu.Unlock()

	if on {
		a.Evaluate(ctx, sess)
	}
}
