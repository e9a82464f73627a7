package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// VoteService maintains the per-song like/dislike aggregates and the
// user's own vote map. Aggregates are created lazily when a song is first
// observed; the first vote a user casts on a song earns a one-time point.
type VoteService struct {
	profile *ProfileService
	points  *PointsService
	logger  *slog.Logger

	// rng seeds new aggregates with cosmetic initial counts. Injected so
	// tests pin the seed.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewVoteService creates the vote service.
func NewVoteService(profile *ProfileService, points *PointsService, rng *rand.Rand, logger *slog.Logger) *VoteService {
	return &VoteService{
		profile: profile,
		points:  points,
		rng:     rng,
		logger:  logger,
	}
}

// Observe seeds an aggregate entry for a newly seen song. Placeholder
// titles never get an entry, and an existing entry is left alone.
func (v *VoteService) Observe(ctx context.Context, sess domain.Session, np domain.NowPlaying) {
	if sess.Anonymous() || np.IsPlaceholder() || np.SongID == "" {
		return
	}

	_ = v.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if _, ok := p.SongVotes[np.SongID]; ok {
			return nil, nil
		}
		likes, dislikes := v.seed()
		p.SongVotes[np.SongID] = domain.NewSongVote(np, likes, dislikes)
		return []string{store.RecordVotes}, nil
	})
}

// Cast records the user's vote on a song. Repeating the current vote is a
// no-op; switching moves the aggregate by one in each direction. Only the
// first ever vote on a song awards a point.
func (v *VoteService) Cast(ctx context.Context, sess domain.Session, songID string, kind domain.VoteKind) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to vote on songs")
	}
	if !kind.Valid() {
		return apperrors.Validationf("invalid vote %q", kind)
	}
	if songID == "" {
		return apperrors.Validation("song id is required")
	}

	return v.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		prev := p.Stats.SongUserVotes[songID]
		if prev == kind {
			return nil, nil
		}

		agg, ok := p.SongVotes[songID]
		if !ok {
			// Vote on a song never observed, e.g. straight from history.
			agg = &domain.SongVote{ID: songID}
			p.SongVotes[songID] = agg
		}
		agg.Shift(prev, kind)
		p.Stats.SongUserVotes[songID] = kind

		if prev == "" {
			v.points.awardVote(p.Stats)
		}
		return []string{store.RecordVotes, store.RecordStats}, nil
	})
}

// Aggregate returns the community tally for a song, if one exists.
func (v *VoteService) Aggregate(sess domain.Session, songID string) (domain.SongVote, bool) {
	agg, ok := v.profile.Profile(sess).SongVotes[songID]
	if !ok {
		return domain.SongVote{}, false
	}
	return *agg, true
}

// UserVote returns the session's own vote on a song, empty when none.
func (v *VoteService) UserVote(sess domain.Session, songID string) domain.VoteKind {
	return v.profile.Profile(sess).Stats.SongUserVotes[songID]
}

func (v *VoteService) seed() (likes, dislikes int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rng.Intn(50), v.rng.Intn(10)
}
