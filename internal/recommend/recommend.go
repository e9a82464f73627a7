// Package recommend wraps the optional AI text-generation collaborator.
// Everything here is best-effort enrichment: any failure degrades to
// empty or fallback content and never touches progression state.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wavefmapp/wavefm-core/internal/domain"
)

// Asker is the opaque text-generation collaborator. Implementations are
// supplied by the embedding application; the core never inspects how the
// answer is produced.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Service produces optional enrichment text. A nil Asker is valid and
// means every call falls back.
type Service struct {
	asker  Asker
	logger *slog.Logger
}

// NewService creates the enrichment service. asker may be nil.
func NewService(asker Asker, logger *slog.Logger) *Service {
	return &Service{asker: asker, logger: logger}
}

// StationBlurb returns a short descriptive blurb for a station, or the
// empty string when the collaborator is absent or failing. Callers render
// nothing rather than an error.
func (s *Service) StationBlurb(ctx context.Context, station *domain.Station) string {
	prompt := fmt.Sprintf(
		"In one sentence, describe an internet radio station called %q playing %s.",
		station.Name, station.PrimaryGenre(),
	)
	return s.ask(ctx, prompt)
}

// ListeningDigest summarizes a user's listening habits from their stats.
// Best-effort; empty on any failure.
func (s *Service) ListeningDigest(ctx context.Context, stats *domain.ListeningStats) string {
	if stats.TotalTime == 0 {
		return ""
	}
	prompt := fmt.Sprintf(
		"Summarize in two sentences the tastes of a listener with %d seconds of listening across genres: %s.",
		stats.TotalTime, strings.Join(stats.GenresPlayed, ", "),
	)
	return s.ask(ctx, prompt)
}

func (s *Service) ask(ctx context.Context, prompt string) string {
	if s.asker == nil {
		return ""
	}
	answer, err := s.asker.Ask(ctx, prompt)
	if err != nil {
		s.logger.Debug("enrichment unavailable", "error", err)
		return ""
	}
	return strings.TrimSpace(answer)
}
