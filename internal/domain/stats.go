package domain

import (
	"slices"
	"time"
)

// SongHistoryLimit caps the recently-played list.
const SongHistoryLimit = 50

// DateLayout is the day-granularity format used for streak bookkeeping.
const DateLayout = "2006-01-02"

// DateKey normalizes a time to its local calendar day.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// StationPlay accumulates listening time for one station.
type StationPlay struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
	Time  int64  `json:"time"` // seconds
}

// HistoryEntry is one row of the recently-played list.
type HistoryEntry struct {
	SongID      string    `json:"songId"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	AlbumArt    string    `json:"albumArt,omitempty"`
	StationName string    `json:"stationName"`
	PlayedAt    time.Time `json:"playedAt"`
}

// ListeningStats is the per-user progression aggregate. All mutation goes
// through the methods below so the invariants hold by construction:
// TotalTime and MaxStreak never decrease, and CurrentStreak <= MaxStreak
// after every update.
type ListeningStats struct {
	TotalTime      int64                   `json:"totalTime"` // seconds
	Points         int                     `json:"points"`
	StationPlays   map[string]*StationPlay `json:"stationPlays"`   // keyed by stream URL
	StationRatings map[string]int          `json:"stationRatings"` // this user's 1..5 rating per station
	SongUserVotes  map[string]VoteKind     `json:"songUserVotes"`
	LastListenDate string                  `json:"lastListenDate,omitempty"`
	CurrentStreak  int                     `json:"currentStreak"`
	MaxStreak      int                     `json:"maxStreak"`
	GenresPlayed   []string                `json:"genresPlayed"` // set, first-play order
	SongHistory    []HistoryEntry          `json:"songHistory"`  // most recent first
}

// NewListeningStats returns zeroed stats with allocated maps.
func NewListeningStats() *ListeningStats {
	return &ListeningStats{
		StationPlays:   make(map[string]*StationPlay),
		StationRatings: make(map[string]int),
		SongUserVotes:  make(map[string]VoteKind),
	}
}

// EnsureMaps allocates any nil maps. Called after JSON decoding, where
// absent fields come back nil.
func (s *ListeningStats) EnsureMaps() {
	if s.StationPlays == nil {
		s.StationPlays = make(map[string]*StationPlay)
	}
	if s.StationRatings == nil {
		s.StationRatings = make(map[string]int)
	}
	if s.SongUserVotes == nil {
		s.SongUserVotes = make(map[string]VoteKind)
	}
}

// TouchDay folds a station selection into the daily streak. Same-day
// repeats leave the streak unchanged; a selection exactly one day after
// the last one extends it; any gap resets it to 1. MaxStreak is raised in
// the same step so CurrentStreak can never be observed above it.
func (s *ListeningStats) TouchDay(now time.Time) {
	today := DateKey(now)
	if s.LastListenDate == today {
		return
	}
	if s.LastListenDate == DateKey(now.AddDate(0, 0, -1)) {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}
	s.MaxStreak = max(s.MaxStreak, s.CurrentStreak)
	s.LastListenDate = today
}

// AddGenre inserts a primary genre into the explored set. Empty genres are
// ignored. Returns true if the genre was new.
func (s *ListeningStats) AddGenre(genre string) bool {
	if genre == "" || slices.Contains(s.GenresPlayed, genre) {
		return false
	}
	s.GenresPlayed = append(s.GenresPlayed, genre)
	return true
}

// Tick accumulates one second of confirmed listening against a station,
// creating its play entry on first contact.
func (s *ListeningStats) Tick(station *Station) {
	s.TotalTime++
	play, ok := s.StationPlays[station.StreamURL]
	if !ok {
		play = &StationPlay{Name: station.Name, Genre: station.Genre}
		s.StationPlays[station.StreamURL] = play
	}
	play.Time++
}

// RecordSong prepends a history entry for a real song, deduplicating
// against the current head and capping the list. Placeholder entries and
// immediate repeats are dropped. Returns true if an entry was added.
func (s *ListeningStats) RecordSong(np NowPlaying, stationName string, playedAt time.Time) bool {
	if np.IsPlaceholder() {
		return false
	}
	if len(s.SongHistory) > 0 && s.SongHistory[0].SongID == np.SongID {
		return false
	}
	entry := HistoryEntry{
		SongID:      np.SongID,
		Title:       np.Title,
		Artist:      np.Artist,
		AlbumArt:    np.AlbumArt,
		StationName: stationName,
		PlayedAt:    playedAt,
	}
	s.SongHistory = append([]HistoryEntry{entry}, s.SongHistory...)
	if len(s.SongHistory) > SongHistoryLimit {
		s.SongHistory = s.SongHistory[:SongHistoryLimit]
	}
	return true
}
