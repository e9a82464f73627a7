package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchDay(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 10+offset, 9, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		setup      func(*ListeningStats)
		at         time.Time
		wantStreak int
		wantMax    int
	}{
		{
			name:       "first ever listen",
			setup:      func(s *ListeningStats) {},
			at:         day(0),
			wantStreak: 1,
			wantMax:    1,
		},
		{
			name: "same day is unchanged",
			setup: func(s *ListeningStats) {
				s.LastListenDate = DateKey(day(0))
				s.CurrentStreak = 4
				s.MaxStreak = 4
			},
			at:         day(0),
			wantStreak: 4,
			wantMax:    4,
		},
		{
			name: "consecutive day increments",
			setup: func(s *ListeningStats) {
				s.LastListenDate = DateKey(day(0))
				s.CurrentStreak = 4
				s.MaxStreak = 4
			},
			at:         day(1),
			wantStreak: 5,
			wantMax:    5,
		},
		{
			name: "skipped day resets to one",
			setup: func(s *ListeningStats) {
				s.LastListenDate = DateKey(day(0))
				s.CurrentStreak = 4
				s.MaxStreak = 4
			},
			at:         day(2),
			wantStreak: 1,
			wantMax:    4,
		},
		{
			name: "max streak never decreases",
			setup: func(s *ListeningStats) {
				s.LastListenDate = DateKey(day(-3))
				s.CurrentStreak = 2
				s.MaxStreak = 9
			},
			at:         day(0),
			wantStreak: 1,
			wantMax:    9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewListeningStats()
			tt.setup(stats)

			stats.TouchDay(tt.at)

			assert.Equal(t, tt.wantStreak, stats.CurrentStreak)
			assert.Equal(t, tt.wantMax, stats.MaxStreak)
			assert.Equal(t, DateKey(tt.at), stats.LastListenDate)
			assert.LessOrEqual(t, stats.CurrentStreak, stats.MaxStreak)
		})
	}
}

func TestTickAccumulates(t *testing.T) {
	stats := NewListeningStats()
	station := &Station{Name: "Groove Salad", Genre: "Ambient/Downtempo", StreamURL: "https://example.com/gs"}

	for range 5 {
		stats.Tick(station)
	}

	assert.Equal(t, int64(5), stats.TotalTime)
	require.Contains(t, stats.StationPlays, station.StreamURL)
	play := stats.StationPlays[station.StreamURL]
	assert.Equal(t, "Groove Salad", play.Name)
	assert.Equal(t, int64(5), play.Time)
}

func TestAddGenre(t *testing.T) {
	stats := NewListeningStats()

	assert.True(t, stats.AddGenre("Ambient"))
	assert.False(t, stats.AddGenre("Ambient"))
	assert.False(t, stats.AddGenre(""))
	assert.True(t, stats.AddGenre("Jazz"))
	assert.Equal(t, []string{"Ambient", "Jazz"}, stats.GenresPlayed)
}

func TestRecordSongDedupsAgainstHead(t *testing.T) {
	stats := NewListeningStats()
	now := time.Now()
	song := NewNowPlaying("Tycho", "Awake", "")

	assert.True(t, stats.RecordSong(song, "Groove Salad", now))
	assert.False(t, stats.RecordSong(song, "Groove Salad", now.Add(time.Minute)))
	require.Len(t, stats.SongHistory, 1)

	other := NewNowPlaying("Com Truise", "Brokendate", "")
	assert.True(t, stats.RecordSong(other, "Groove Salad", now.Add(2*time.Minute)))

	// Back to the first song: the head changed, so it records again.
	assert.True(t, stats.RecordSong(song, "Groove Salad", now.Add(3*time.Minute)))
	assert.Len(t, stats.SongHistory, 3)
	assert.Equal(t, song.SongID, stats.SongHistory[0].SongID)
}

func TestRecordSongSkipsPlaceholders(t *testing.T) {
	stats := NewListeningStats()
	now := time.Now()

	assert.False(t, stats.RecordSong(NewNowPlaying("", TitleLiveStream, ""), "FIP", now))
	assert.False(t, stats.RecordSong(NewNowPlaying("", TitleUnavailable, ""), "FIP", now))
	assert.Empty(t, stats.SongHistory)
}

func TestRecordSongCapsHistory(t *testing.T) {
	stats := NewListeningStats()
	now := time.Now()

	for i := range SongHistoryLimit + 1 {
		np := NewNowPlaying("Artist", fmt.Sprintf("Song %d", i), "")
		require.True(t, stats.RecordSong(np, "Station", now.Add(time.Duration(i)*time.Minute)))
	}

	assert.Len(t, stats.SongHistory, SongHistoryLimit)
	// Most recent first; the oldest entry fell off.
	assert.Equal(t, SongID("Artist", fmt.Sprintf("Song %d", SongHistoryLimit)), stats.SongHistory[0].SongID)
	assert.Equal(t, SongID("Artist", "Song 1"), stats.SongHistory[SongHistoryLimit-1].SongID)
}

func TestEnsureMaps(t *testing.T) {
	var stats ListeningStats
	stats.EnsureMaps()

	assert.NotNil(t, stats.StationPlays)
	assert.NotNil(t, stats.StationRatings)
	assert.NotNil(t, stats.SongUserVotes)
}
