package domain

import (
	"strings"

	"github.com/wavefmapp/wavefm-core/internal/util"
)

// Location is an optional geographic position for the station map view.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	City string  `json:"city,omitempty"`
}

// Station is a playable stream. Identity is the stream URL - two records
// with the same URL are the same station.
type Station struct {
	// ID is assigned to user-submitted stations; built-in catalog
	// entries leave it empty.
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name" validate:"required,min=2,max=80"`
	Genre        string    `json:"genre" validate:"required"` // slash or comma separated tags
	Description  string    `json:"description" validate:"max=500"`
	StreamURL    string    `json:"streamUrl" validate:"required,url"`
	CoverArt     string    `json:"coverArt" validate:"omitempty,url"`
	TippingURL   string    `json:"tippingUrl,omitempty" validate:"omitempty,url"`
	Rating       float64   `json:"rating"`
	RatingsCount int       `json:"ratingsCount"`
	Location     *Location `json:"location,omitempty"`

	// IsFavorite is a per-user overlay joined from the favorites set.
	// It is never persisted on the station record itself.
	IsFavorite bool `json:"isFavorite,omitempty"`
}

// PrimaryGenre returns the first genre tag, the segment before the first
// slash or comma, trimmed. Used for the genres-played set.
func (s *Station) PrimaryGenre() string {
	g := s.Genre
	if i := strings.IndexAny(g, "/,"); i >= 0 {
		g = g[:i]
	}
	return strings.TrimSpace(g)
}

// Placeholder titles reported by the player when no real song metadata is
// available. Excluded from song history and vote seeding.
const (
	TitleLiveStream  = "Live Stream"
	TitleUnavailable = "Station Data Unavailable"
)

// NowPlaying is the song metadata currently reported for the active station.
// Ephemeral - supplied by the player, never persisted as-is.
type NowPlaying struct {
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	AlbumArt string `json:"albumArt,omitempty"`
	SongID   string `json:"songId"`
}

// NewNowPlaying builds a NowPlaying with a derived song ID.
func NewNowPlaying(artist, title, albumArt string) NowPlaying {
	return NowPlaying{
		Artist:   artist,
		Title:    title,
		AlbumArt: albumArt,
		SongID:   SongID(artist, title),
	}
}

// SongID derives the stable song key from artist and title.
func SongID(artist, title string) string {
	return util.Slug(artist + " " + title)
}

// IsPlaceholder reports whether the entry carries no real song, only a
// stream-level sentinel title.
func (np NowPlaying) IsPlaceholder() bool {
	return np.Title == TitleLiveStream || np.Title == TitleUnavailable
}
