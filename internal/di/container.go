// Package di provides dependency injection configuration for the WaveFM core.
package di

import (
	"github.com/samber/do/v2"

	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/di/providers"
	"github.com/wavefmapp/wavefm-core/internal/logger"
	"github.com/wavefmapp/wavefm-core/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideClock)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideRand)

	// Persistence and notifications
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideNotifyQueue)

	// Collaborators
	do.Provide(injector, providers.ProvidePlayer)
	do.Provide(injector, providers.ProvideRecommend)

	// Progression services
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvidePointsService)
	do.Provide(injector, providers.ProvideAchievementService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideVoteService)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideStationService)
	do.Provide(injector, providers.ProvideAlarmService)

	// Facade
	do.Provide(injector, providers.ProvideEngine)

	return injector
}

// Bootstrap triggers lazy initialization of the whole service graph and
// returns the engine facade.
func Bootstrap(injector *do.RootScope) (*service.Engine, error) {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	return do.Invoke[*service.Engine](injector)
}
