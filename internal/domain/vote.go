package domain

// VoteKind is a user's thumbs-up or thumbs-down on a song.
type VoteKind string

// Vote values. The empty string means "never voted".
const (
	VoteLike    VoteKind = "like"
	VoteDislike VoteKind = "dislike"
)

// Valid reports whether the kind is one of the two castable values.
func (k VoteKind) Valid() bool {
	return k == VoteLike || k == VoteDislike
}

// SongVote is the aggregate like/dislike tally for one song, created
// lazily the first time the song is observed while authenticated.
type SongVote struct {
	ID       string `json:"id"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	AlbumArt string `json:"albumArt,omitempty"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// NewSongVote seeds an aggregate from now-playing metadata with initial
// counts. The seeds are cosmetic; callers pass zeros for exact tallies.
func NewSongVote(np NowPlaying, seedLikes, seedDislikes int) *SongVote {
	return &SongVote{
		ID:       np.SongID,
		Artist:   np.Artist,
		Title:    np.Title,
		AlbumArt: np.AlbumArt,
		Likes:    seedLikes,
		Dislikes: seedDislikes,
	}
}

// Shift moves the aggregate when a user's own vote transitions from prev
// to next. Casting the same vote again is the caller's no-op; this only
// handles none->vote and vote->opposite. Counts never go below zero.
func (v *SongVote) Shift(prev, next VoteKind) {
	switch prev {
	case VoteLike:
		v.Likes--
	case VoteDislike:
		v.Dislikes--
	}
	switch next {
	case VoteLike:
		v.Likes++
	case VoteDislike:
		v.Dislikes++
	}
	v.Likes = max(v.Likes, 0)
	v.Dislikes = max(v.Dislikes, 0)
}
