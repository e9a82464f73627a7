// Package providers contains dependency injection providers for the
// WaveFM core.
package providers

import (
	"math/rand"
	"time"

	"github.com/samber/do/v2"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/logger"
	"github.com/wavefmapp/wavefm-core/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting WaveFM core",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.Path,
		"tick_interval", cfg.Session.TickInterval,
	)

	return log, nil
}

// ProvideClock provides the wall clock. Tests and simulations swap in a
// fake via their own wiring.
func ProvideClock(i do.Injector) (clock.Clock, error) {
	return clock.System(), nil
}

// ProvideValidator provides the struct validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideRand provides the randomness source for cosmetic vote seeding.
func ProvideRand(i do.Injector) (*rand.Rand, error) {
	return rand.New(rand.NewSource(time.Now().UnixNano())), nil
}
