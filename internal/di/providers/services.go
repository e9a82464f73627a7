package providers

import (
	"math/rand"

	"github.com/samber/do/v2"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/logger"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/player"
	"github.com/wavefmapp/wavefm-core/internal/recommend"
	"github.com/wavefmapp/wavefm-core/internal/service"
	"github.com/wavefmapp/wavefm-core/internal/validation"
)

// ProvidePlayer provides the playback collaborator. The headless core
// runs with the no-op transport; an embedding UI overrides this
// provider with its real player.
func ProvidePlayer(i do.Injector) (player.Player, error) {
	return player.Noop{}, nil
}

// ProvideRecommend provides the enrichment service. With no Asker wired
// every lookup degrades to empty content.
func ProvideRecommend(i do.Injector) (*recommend.Service, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return recommend.NewService(nil, log.Logger), nil
}

// ProvideProfileService provides the session and snapshot owner.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	queue := do.MustInvoke[*notify.Queue](i)
	c := do.MustInvoke[clock.Clock](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, queue, c, log.Logger), nil
}

// ProvidePointsService provides the points engine.
func ProvidePointsService(i do.Injector) (*service.PointsService, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	queue := do.MustInvoke[*notify.Queue](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPointsService(profile, queue, cfg.Points, log.Logger), nil
}

// ProvideAchievementService provides the achievement evaluator.
func ProvideAchievementService(i do.Injector) (*service.AchievementService, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	queue := do.MustInvoke[*notify.Queue](i)
	c := do.MustInvoke[clock.Clock](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAchievementService(profile, queue, c, log.Logger), nil
}

// ProvideStatsService provides the stats aggregator.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	points := do.MustInvoke[*service.PointsService](i)
	achievements := do.MustInvoke[*service.AchievementService](i)
	c := do.MustInvoke[clock.Clock](i)
	queue := do.MustInvoke[*notify.Queue](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(profile, points, achievements, c, queue, log.Logger), nil
}

// ProvideVoteService provides the song vote service.
func ProvideVoteService(i do.Injector) (*service.VoteService, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	points := do.MustInvoke[*service.PointsService](i)
	rng := do.MustInvoke[*rand.Rand](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewVoteService(profile, points, rng, log.Logger), nil
}

// ProvideSessionService provides the listening session state machine.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	stats := do.MustInvoke[*service.StatsService](i)
	votes := do.MustInvoke[*service.VoteService](i)
	p := do.MustInvoke[player.Player](i)
	c := do.MustInvoke[clock.Clock](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(stats, votes, p, c, cfg.Session, log.Logger), nil
}

// ProvideStationService provides the station catalog and station actions.
func ProvideStationService(i do.Injector) (*service.StationService, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	points := do.MustInvoke[*service.PointsService](i)
	achievements := do.MustInvoke[*service.AchievementService](i)
	v := do.MustInvoke[*validation.Validator](i)
	queue := do.MustInvoke[*notify.Queue](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStationService(profile, points, achievements, v, queue, cfg.Points, domain.DefaultCatalog(), log.Logger), nil
}

// ProvideAlarmService provides the wake-up scheduler.
func ProvideAlarmService(i do.Injector) (*service.AlarmService, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	stations := do.MustInvoke[*service.StationService](i)
	session := do.MustInvoke[*service.SessionService](i)
	v := do.MustInvoke[*validation.Validator](i)
	c := do.MustInvoke[clock.Clock](i)
	queue := do.MustInvoke[*notify.Queue](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAlarmService(profile, stations, session, v, c, queue, log.Logger), nil
}

// ProvideEngine provides the facade.
func ProvideEngine(i do.Injector) (*service.Engine, error) {
	profile := do.MustInvoke[*service.ProfileService](i)
	session := do.MustInvoke[*service.SessionService](i)
	stats := do.MustInvoke[*service.StatsService](i)
	points := do.MustInvoke[*service.PointsService](i)
	achievements := do.MustInvoke[*service.AchievementService](i)
	alarm := do.MustInvoke[*service.AlarmService](i)
	votes := do.MustInvoke[*service.VoteService](i)
	stations := do.MustInvoke[*service.StationService](i)
	rec := do.MustInvoke[*recommend.Service](i)
	queue := do.MustInvoke[*notify.Queue](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEngine(
		profile,
		session,
		stats,
		points,
		achievements,
		alarm,
		votes,
		stations,
		rec,
		queue,
		storeHandle.Store,
		log.Logger,
	), nil
}
