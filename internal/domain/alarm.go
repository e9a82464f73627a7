package domain

import (
	"fmt"
	"time"
)

// AlarmTimeLayout is the wall-clock format alarms are stored in.
const AlarmTimeLayout = "15:04"

// Alarm is a one-shot scheduled station wake-up. At most one per user.
// Firing deactivates it; disabling keeps time and station so the user can
// re-enable the same settings.
type Alarm struct {
	Time        string `json:"time" validate:"required"` // "HH:MM"
	StationURL  string `json:"stationUrl" validate:"required,url"`
	StationName string `json:"stationName"`
	IsActive    bool   `json:"isActive"`
}

// NextFireTime computes the next wall-clock occurrence of the alarm time:
// today if still ahead of now, otherwise tomorrow. Recomputed fresh on
// every arm - a previously derived absolute time is never trusted across
// restarts.
func (a *Alarm) NextFireTime(now time.Time) (time.Time, error) {
	at, err := time.Parse(AlarmTimeLayout, a.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse alarm time %q: %w", a.Time, err)
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}
