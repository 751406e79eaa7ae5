package game

import (
	"reflect"
	"testing"

	"github.com/emrekoco/syncarena/syncarena-backend/models"
)

func TestLeaderboardOrdersByScoreDescending(t *testing.T) {
	players := map[string]models.PlayerState{
		"a": {Score: 1},
		"b": {Score: 10},
		"c": {Score: 5},
	}

	entries := Leaderboard(players)

	want := []models.LeaderboardEntry{
		{ID: "b", Score: 10},
		{ID: "c", Score: 5},
		{ID: "a", Score: 1},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("got %+v, want %+v", entries, want)
	}
}

func TestLeaderboardTieBreaksByID(t *testing.T) {
	players := map[string]models.PlayerState{
		"zed":   {Score: 7},
		"alice": {Score: 7},
		"mia":   {Score: 7},
	}

	entries := Leaderboard(players)

	want := []models.LeaderboardEntry{
		{ID: "alice", Score: 7},
		{ID: "mia", Score: 7},
		{ID: "zed", Score: 7},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("got %+v, want %+v", entries, want)
	}
}

func TestLeaderboardIsDeterministic(t *testing.T) {
	players := map[string]models.PlayerState{
		"a": {Score: 3},
		"b": {Score: 3},
		"c": {Score: 8},
		"d": {Score: 0},
	}

	first := Leaderboard(players)
	for i := 0; i < 20; i++ {
		if next := Leaderboard(players); !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, next)
		}
	}
}

func TestLeaderboardEmptySnapshot(t *testing.T) {
	entries := Leaderboard(map[string]models.PlayerState{})
	if len(entries) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", entries)
	}
}
