package providers

import (
	"github.com/samber/do/v2"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/logger"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the profile store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		db  *store.Store
		err error
	)
	if cfg.Data.InMemory {
		db, err = store.NewInMemory(log.Logger)
	} else {
		db, err = store.New(cfg.Data.Path, log.Logger)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Profile store initialized", "path", cfg.Data.Path, "in_memory", cfg.Data.InMemory)

	return &StoreHandle{Store: db}, nil
}

// ProvideNotifyQueue provides the toast notification queue.
func ProvideNotifyQueue(i do.Injector) (*notify.Queue, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	c := do.MustInvoke[clock.Clock](i)

	return notify.NewQueue(c, log.Logger, cfg.Notify.DisplayDuration, cfg.Notify.ExitDuration), nil
}
