// Package player defines the audio-transport collaborator. The core never
// decodes audio: it hands stations to the player and consumes the player's
// now-playing reports.
package player

import "github.com/wavefmapp/wavefm-core/internal/domain"

// Player is the playback surface the core drives. Implementations wrap
// whatever transport the UI embeds.
type Player interface {
	// SelectStation starts playback of a station.
	SelectStation(station domain.Station)
	// Next and Previous move through the station list the player holds.
	Next()
	Previous()
}

// Noop is a Player that does nothing. Used when the core runs headless
// (tests, simulations) or before the UI attaches a real transport.
type Noop struct{}

// SelectStation implements Player.
func (Noop) SelectStation(domain.Station) {}

// Next implements Player.
func (Noop) Next() {}

// Previous implements Player.
func (Noop) Previous() {}
