package domain

import "time"

// AchievementID identifies one entry of the fixed achievement catalog.
type AchievementID string

// The full catalog. IDs are stable - they key the persisted unlocked map.
const (
	AchFirstListen   AchievementID = "first_listen"
	AchOneHour       AchievementID = "one_hour"
	AchTenHours      AchievementID = "ten_hours"
	AchExplorer3     AchievementID = "explorer_3"
	AchExplorer5     AchievementID = "explorer_5"
	AchStreak3       AchievementID = "streak_3"
	AchStreak7       AchievementID = "streak_7"
	AchCurator       AchievementID = "curator"
	AchPartyStarter  AchievementID = "party_starter"
	AchNightOwl      AchievementID = "night_owl"
	AchEarlyBird     AchievementID = "early_bird"
	AchStationSubmit AchievementID = "station_submit"
)

// Achievement is the human-readable metadata for a catalog entry.
type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
}

// Catalog lists every achievement in display order.
var Catalog = []Achievement{
	{AchFirstListen, "First Listen", "Tune in for the first time", "🎧"},
	{AchOneHour, "Hour of Power", "Listen for a total of one hour", "⏰"},
	{AchTenHours, "Dedicated Listener", "Listen for a total of ten hours", "🏆"},
	{AchExplorer3, "Genre Explorer", "Listen to three different genres", "🧭"},
	{AchExplorer5, "Genre Connoisseur", "Listen to five different genres", "🌍"},
	{AchStreak3, "Three in a Row", "Listen three days in a row", "🔥"},
	{AchStreak7, "Week Streak", "Listen seven days in a row", "⚡"},
	{AchCurator, "Curator", "Save your first favorite station", "⭐"},
	{AchPartyStarter, "Party Starter", "Turn on party mode", "🎉"},
	{AchNightOwl, "Night Owl", "Listen between midnight and 4 AM", "🦉"},
	{AchEarlyBird, "Early Bird", "Listen between 5 and 8 AM", "🐦"},
	{AchStationSubmit, "Broadcaster", "Submit a station of your own", "📡"},
}

// AchievementByID finds a catalog entry.
func AchievementByID(id AchievementID) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// UnlockedAchievement records a one-time, permanent unlock. The unlocked
// map is append-only: entries are never overwritten or removed.
type UnlockedAchievement struct {
	ID         AchievementID `json:"id"`
	UnlockedAt time.Time     `json:"unlockedAt"`
}

// AchievementInput is the snapshot the predicate table evaluates against.
type AchievementInput struct {
	Stats         *ListeningStats
	FavoriteCount int
	PartyMode     bool

	// OnTick gates the hour-window predicates, which only fire while
	// listening is actually happening, never retroactively.
	OnTick bool
	Hour   int // local hour, meaningful only when OnTick
}

// EligibleAchievements returns every catalog ID whose predicate holds for
// the input. Predicates are independent, so order carries no meaning.
// AchStationSubmit has no predicate - it is unlocked explicitly on a
// successful submission.
func EligibleAchievements(in AchievementInput) []AchievementID {
	var out []AchievementID
	add := func(id AchievementID, ok bool) {
		if ok {
			out = append(out, id)
		}
	}

	s := in.Stats
	add(AchFirstListen, s.TotalTime > 1)
	add(AchOneHour, s.TotalTime >= 3600)
	add(AchTenHours, s.TotalTime >= 36000)
	add(AchExplorer3, len(s.GenresPlayed) >= 3)
	add(AchExplorer5, len(s.GenresPlayed) >= 5)
	add(AchStreak3, s.CurrentStreak >= 3)
	add(AchStreak7, s.CurrentStreak >= 7)
	add(AchCurator, in.FavoriteCount > 0)
	add(AchPartyStarter, in.PartyMode)
	if in.OnTick {
		add(AchNightOwl, in.Hour >= 0 && in.Hour < 4)
		add(AchEarlyBird, in.Hour >= 5 && in.Hour < 8)
	}
	return out
}
