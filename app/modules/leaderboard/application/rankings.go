package leaderboardservice

import (
	"sort"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
)

// rankAssignment pairs a ranking entry with its newly computed rank.
type rankAssignment struct {
	Entry leaderboarddb.RankingEntry
	Rank  int
}

// assignRanks orders entries by total points desc, exact scores desc, then
// account creation time asc, and assigns competition-style ("1224") ranks:
// users tied on both points and exact scores share a rank, and the next
// distinct user takes the rank their position implies.
func assignRanks(entries []leaderboarddb.RankingEntry) []rankAssignment {
	sorted := make([]leaderboarddb.RankingEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.ExactScores != b.ExactScores {
			return a.ExactScores > b.ExactScores
		}
		if !a.UserCreatedAt.Equal(b.UserCreatedAt) {
			return a.UserCreatedAt.Before(b.UserCreatedAt)
		}
		return a.UserID.String() < b.UserID.String()
	})

	assignments := make([]rankAssignment, len(sorted))
	for i, entry := range sorted {
		rank := i + 1
		if i > 0 {
			prev := sorted[i-1]
			if prev.TotalPoints == entry.TotalPoints && prev.ExactScores == entry.ExactScores {
				rank = assignments[i-1].Rank
			}
		}
		assignments[i] = rankAssignment{Entry: entry, Rank: rank}
	}
	return assignments
}
