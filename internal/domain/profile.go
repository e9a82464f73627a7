package domain

import "slices"

// DefaultTheme is the cosmetic theme every user starts with.
const DefaultTheme = "classic"

// Profile is the complete namespaced state for one user: everything the
// store persists under their username, with type-correct defaults for
// records that were never written.
type Profile struct {
	Stats          *ListeningStats                       `json:"stats"`
	Alarm          *Alarm                                `json:"alarm,omitempty"` // nil = never set
	SongVotes      map[string]*SongVote                  `json:"songVotes"`
	Achievements   map[AchievementID]UnlockedAchievement `json:"achievements"`
	Favorites      []string                              `json:"favorites"` // stream URLs, insertion order
	ActiveTheme    string                                `json:"activeTheme"`
	UnlockedThemes []string                              `json:"unlockedThemes"`
	UserStations   []Station                             `json:"userStations"`
}

// NewProfile returns anonymous defaults.
func NewProfile() *Profile {
	return &Profile{
		Stats:          NewListeningStats(),
		SongVotes:      make(map[string]*SongVote),
		Achievements:   make(map[AchievementID]UnlockedAchievement),
		ActiveTheme:    DefaultTheme,
		UnlockedThemes: []string{DefaultTheme},
	}
}

// HasFavorite reports whether a station is in the favorites set.
func (p *Profile) HasFavorite(streamURL string) bool {
	return slices.Contains(p.Favorites, streamURL)
}

// ToggleFavorite adds or removes a station and reports the new membership.
func (p *Profile) ToggleFavorite(streamURL string) bool {
	if i := slices.Index(p.Favorites, streamURL); i >= 0 {
		p.Favorites = slices.Delete(p.Favorites, i, i+1)
		return false
	}
	p.Favorites = append(p.Favorites, streamURL)
	return true
}

// HasTheme reports whether a theme has been unlocked.
func (p *Profile) HasTheme(name string) bool {
	return slices.Contains(p.UnlockedThemes, name)
}

// HasUnlocked reports whether an achievement is already in the map.
func (p *Profile) HasUnlocked(id AchievementID) bool {
	_, ok := p.Achievements[id]
	return ok
}
