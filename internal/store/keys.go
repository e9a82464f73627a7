package store

// Record names are the logical per-user records of the persisted layout.
// Each maps to one key under the user's namespace.
const (
	RecordStats        = "listeningStats"
	RecordAlarm        = "alarm"
	RecordVotes        = "songVotes"
	RecordAchievements = "unlockedAchievements"
	RecordFavorites    = "favoriteStations"
	RecordActiveTheme  = "activeTheme"
	RecordThemes       = "unlockedThemes"
	RecordUserStations = "userStations"
)

// identityKey is the single non-namespaced key pointing at the active
// username. It is the only record cleared on logout; user namespaces are
// retained so the same username resumes on next login.
const identityKey = "identity"

const userPrefix = "user:"

// profileKey builds the namespaced key for one of a user's records.
func profileKey(username, record string) string {
	return userPrefix + username + ":" + record
}
