package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/logger"
)

type stubAsker struct {
	reply string
	err   error
}

func (s stubAsker) Ask(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func TestStationBlurb(t *testing.T) {
	svc := NewService(stubAsker{reply: "Chilled beats from the bay."}, logger.Discard().Logger)

	station := &domain.Station{Name: "Groove Salad", Genre: "Ambient/Downtempo"}
	assert.Equal(t, "Chilled beats from the bay.", svc.StationBlurb(context.Background(), station))
}

func TestFailuresDegradeToEmpty(t *testing.T) {
	ctx := context.Background()
	station := &domain.Station{Name: "Groove Salad"}
	stats := domain.NewListeningStats()

	failing := NewService(stubAsker{err: errors.New("quota exceeded")}, logger.Discard().Logger)
	assert.Empty(t, failing.StationBlurb(ctx, station))
	assert.Empty(t, failing.ListeningDigest(ctx, stats))

	// No collaborator wired at all.
	absent := NewService(nil, logger.Discard().Logger)
	assert.Empty(t, absent.StationBlurb(ctx, station))
	assert.Empty(t, absent.ListeningDigest(ctx, stats))
}
