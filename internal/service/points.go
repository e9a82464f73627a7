package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// PointsService derives point deltas from listening time and user
// actions. All credits are single-unit and tied 1:1 to their triggering
// event; debits are gated so the balance can never go negative.
type PointsService struct {
	profile *ProfileService
	notify  *notify.Queue
	cfg     config.PointsConfig
	logger  *slog.Logger

	// periodicSeconds counts ticks since the last listening toast. A
	// milestone resets it so the two toast kinds never fire from the same
	// tick cycle.
	mu              sync.Mutex
	periodicSeconds int
}

// NewPointsService creates the points engine.
func NewPointsService(profile *ProfileService, q *notify.Queue, cfg config.PointsConfig, logger *slog.Logger) *PointsService {
	return &PointsService{
		profile: profile,
		notify:  q,
		cfg:     cfg,
		logger:  logger,
	}
}

// tickOutcome reports what one listening second produced.
type tickOutcome struct {
	PointAwarded    bool
	Milestone       bool
	MilestonePoints int
	Periodic        bool
}

// applyTick folds one confirmed listening second into the reward
// counters. Runs inside the stats read-modify-write, mutating the same
// snapshot that gets persisted. A point lands on every 60th accumulated
// second; if the new total crosses a milestone, the milestone toast
// replaces (not joins) the periodic one.
func (p *PointsService) applyTick(stats *domain.ListeningStats) tickOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out tickOutcome
	p.periodicSeconds++

	if stats.TotalTime%60 == 0 {
		stats.Points += p.cfg.PerMinute
		out.PointAwarded = true
		if stats.Points%p.cfg.MilestoneEvery == 0 {
			out.Milestone = true
			out.MilestonePoints = stats.Points
			p.periodicSeconds = 0
		}
	}

	if !out.Milestone && p.periodicSeconds >= p.cfg.PeriodicToastSeconds {
		out.Periodic = true
		p.periodicSeconds = 0
	}

	return out
}

// notifyTick enqueues at most one toast for a tick outcome.
func (p *PointsService) notifyTick(out tickOutcome) {
	switch {
	case out.Milestone:
		p.notify.Push(
			"Milestone reached!",
			fmt.Sprintf("You've earned %d points", out.MilestonePoints),
			domain.ToastMilestone,
		)
	case out.Periodic:
		p.notify.Push(
			fmt.Sprintf("+%d points", p.cfg.PerMinute*p.cfg.PeriodicToastSeconds/60),
			"Thanks for listening",
			domain.ToastPoints,
		)
	}
}

// awardVote credits the one-time first-vote bonus. Runs inside a profile
// update closure.
func (p *PointsService) awardVote(stats *domain.ListeningStats) {
	stats.Points += p.cfg.VoteAward
}

// debit removes cost points, rejecting the whole action when the balance
// is short. Runs inside a profile update closure so the pre-check and the
// subtraction are one step.
func (p *PointsService) debit(stats *domain.ListeningStats, cost int, reason string) error {
	if stats.Points < cost {
		return apperrors.InsufficientPoints(
			fmt.Sprintf("%s costs %d points, you have %d", reason, cost, stats.Points),
		)
	}
	stats.Points -= cost
	return nil
}

// Spend is the standalone debit operation for callers outside this
// package. Rejected spends leave the balance untouched.
func (p *PointsService) Spend(ctx context.Context, sess domain.Session, cost int, reason string) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to spend points")
	}
	if cost < 0 {
		return apperrors.Validation("cost must not be negative")
	}
	return p.profile.Update(ctx, sess, func(pr *domain.Profile) ([]string, error) {
		if err := p.debit(pr.Stats, cost, reason); err != nil {
			return nil, err
		}
		return []string{store.RecordStats}, nil
	})
}

// Balance returns the session's current point total.
func (p *PointsService) Balance(sess domain.Session) int {
	return p.profile.Profile(sess).Stats.Points
}

// ResetCycle clears the periodic toast counter. Called on logout so a
// new session starts a fresh notification cycle.
func (p *PointsService) ResetCycle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.periodicSeconds = 0
}
