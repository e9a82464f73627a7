package domain

import "time"

// ToastType selects the visual treatment of a notification.
type ToastType string

// Toast types emitted by the core.
const (
	ToastInfo        ToastType = "info"
	ToastSuccess     ToastType = "success"
	ToastPoints      ToastType = "points"
	ToastMilestone   ToastType = "milestone"
	ToastAchievement ToastType = "achievement"
)

// Toast lifetime defaults: visible for the display duration, then an exit
// transition before removal.
const (
	ToastDisplayDuration = 4 * time.Second
	ToastExitDuration    = 300 * time.Millisecond
)

// Toast is an ephemeral user-facing notification. Lives only in the
// notification queue; never persisted.
type Toast struct {
	ID        int64     `json:"id"` // monotonic, timestamp-derived
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Type      ToastType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Exiting   bool      `json:"exiting"` // in the exit transition
}
