package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	apperrors "github.com/wavefmapp/wavefm-core/internal/errors"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/store"
	"github.com/wavefmapp/wavefm-core/internal/validation"
)

// StationResolver looks up a station by its stream URL among the
// currently known stations.
type StationResolver interface {
	StationByURL(sess domain.Session, streamURL string) (domain.Station, bool)
}

// StationSelector starts a listening session on a station. The session
// service implements it; the indirection keeps the alarm from owning the
// whole session machinery.
type StationSelector interface {
	SelectStation(ctx context.Context, sess domain.Session, station domain.Station) error
}

// AlarmService schedules the one-shot wake-up. Disarmed holds no timer;
// Armed holds exactly one, targeting the next wall-clock occurrence of
// the alarm time. Every change to the alarm cancels the pending timer
// before anything else, and the target time is derived fresh on every
// arm rather than trusted across restarts.
type AlarmService struct {
	profile   *ProfileService
	resolver  StationResolver
	selector  StationSelector
	validator *validation.Validator
	clock     clock.Clock
	notify    *notify.Queue
	logger    *slog.Logger

	mu    sync.Mutex
	timer clock.Timer
}

// NewAlarmService creates the scheduler in the Disarmed state.
func NewAlarmService(profile *ProfileService, resolver StationResolver, selector StationSelector, v *validation.Validator, c clock.Clock, q *notify.Queue, logger *slog.Logger) *AlarmService {
	return &AlarmService{
		profile:   profile,
		resolver:  resolver,
		selector:  selector,
		validator: v,
		clock:     c,
		notify:    q,
		logger:    logger,
	}
}

// Set saves and arms an alarm, replacing any existing one. The previous
// timer is cancelled before the new target is computed.
func (a *AlarmService) Set(ctx context.Context, sess domain.Session, alarm domain.Alarm) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to set an alarm")
	}
	if err := a.validator.Validate(&alarm); err != nil {
		return err
	}
	if _, err := alarm.NextFireTime(a.clock.Now()); err != nil {
		return apperrors.Validationf("invalid alarm time %q, use HH:MM", alarm.Time)
	}
	if _, ok := a.resolver.StationByURL(sess, alarm.StationURL); !ok {
		return apperrors.NotFoundf("no station with url %q", alarm.StationURL)
	}

	alarm.IsActive = true
	err := a.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		p.Alarm = &alarm
		return []string{store.RecordAlarm}, nil
	})
	if err != nil {
		return err
	}

	a.arm(sess, alarm)
	a.notify.Push("Alarm set", alarm.Time+" on "+alarm.StationName, domain.ToastSuccess)
	return nil
}

// Disable cancels the pending timer and persists the alarm inactive. The
// time and station are kept so the same settings can be re-enabled.
func (a *AlarmService) Disable(ctx context.Context, sess domain.Session) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to manage alarms")
	}

	a.disarm()
	return a.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if p.Alarm == nil || !p.Alarm.IsActive {
			return nil, nil
		}
		p.Alarm.IsActive = false
		return []string{store.RecordAlarm}, nil
	})
}

// Enable re-arms a previously disabled alarm with its saved settings.
func (a *AlarmService) Enable(ctx context.Context, sess domain.Session) error {
	if sess.Anonymous() {
		return apperrors.Unauthenticated("sign in to manage alarms")
	}

	var alarm *domain.Alarm
	err := a.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if p.Alarm == nil {
			return nil, apperrors.NotFound("no alarm to enable")
		}
		if p.Alarm.IsActive {
			return nil, nil
		}
		p.Alarm.IsActive = true
		al := *p.Alarm
		alarm = &al
		return []string{store.RecordAlarm}, nil
	})
	if err != nil {
		return err
	}
	if alarm != nil {
		a.arm(sess, *alarm)
	}
	return nil
}

// Resync re-derives the timer from the persisted alarm. Called after
// login and process restart so a stale absolute fire time is never
// reused.
func (a *AlarmService) Resync(ctx context.Context, sess domain.Session) {
	a.disarm()
	if sess.Anonymous() {
		return
	}
	p := a.profile.Profile(sess)
	if p.Alarm == nil || !p.Alarm.IsActive {
		return
	}
	a.arm(sess, *p.Alarm)
}

// Shutdown cancels any pending timer. Called on logout and process exit.
func (a *AlarmService) Shutdown() {
	a.disarm()
}

func (a *AlarmService) arm(sess domain.Session, alarm domain.Alarm) {
	now := a.clock.Now()
	target, err := alarm.NextFireTime(now)
	if err != nil {
		a.logger.Error("cannot arm alarm", "time", alarm.Time, "error", err)
		return
	}

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = a.clock.AfterFunc(target.Sub(now), func() {
		a.fire(sess, alarm)
	})
	a.mu.Unlock()

	a.logger.Info("alarm armed",
		"username", sess.Username,
		"time", alarm.Time,
		"station", alarm.StationName,
		"fires_in", target.Sub(now).Round(time.Second),
	)
}

func (a *AlarmService) disarm() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
}

// fire wakes the listening session on the alarm's station, then
// deactivates and persists the alarm. A one-shot edge: the next
// occurrence is never scheduled implicitly.
func (a *AlarmService) fire(sess domain.Session, alarm domain.Alarm) {
	ctx := context.Background()

	a.mu.Lock()
	a.timer = nil
	a.mu.Unlock()

	a.logger.Info("alarm fired", "username", sess.Username, "station", alarm.StationName)

	station, ok := a.resolver.StationByURL(sess, alarm.StationURL)
	if ok {
		if err := a.selector.SelectStation(ctx, sess, station); err != nil {
			a.logger.Error("alarm station selection failed", "error", err)
		}
		a.notify.Push("Wake up!", "Now playing "+station.Name, domain.ToastInfo)
	} else {
		a.logger.Warn("alarm station not found", "url", alarm.StationURL)
		a.notify.Push("Alarm", "Station "+alarm.StationName+" is unavailable", domain.ToastInfo)
	}

	_ = a.profile.Update(ctx, sess, func(p *domain.Profile) ([]string, error) {
		if p.Alarm == nil {
			return nil, nil
		}
		p.Alarm.IsActive = false
		return []string{store.RecordAlarm}, nil
	})
}
