package game

import (
	"sort"

	"github.com/emrekoco/syncarena/syncarena-backend/models"
)

// Leaderboard ranks a registry snapshot by descending score. Equal scores
// order ascending by connection id, so repeated calls over the same
// snapshot always produce identical output.
func Leaderboard(players map[string]models.PlayerState) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(players))
	for id, player := range players {
		entries = append(entries, models.LeaderboardEntry{ID: id, Score: player.Score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
