package models

// PlayerState is the server-authoritative state kept for one live connection.
// Room is the last room the player joined, empty until the first join.
type PlayerState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
	Room  string  `json:"room,omitempty"`
}

// PlayerUpdate carries a partial mutation of a player's state. Nil fields
// are left untouched when applied.
type PlayerUpdate struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Score *float64 `json:"score"`
}

// LeaderboardEntry is one row of the derived ranking.
type LeaderboardEntry struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}
