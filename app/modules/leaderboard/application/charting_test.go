package leaderboardservice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestGenerateRankingHistoryChart(t *testing.T) {
	userID := sharedtypes.UserID(uuid.New())
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("renders a PNG for a ranking series", func(t *testing.T) {
		history := []leaderboarddb.RankHistory{
			{UserID: userID, Ranking: 5, TotalPoints: 10, CreatedAt: base},
			{UserID: userID, Ranking: 3, TotalPoints: 22, CreatedAt: base.AddDate(0, 0, 1)},
			{UserID: userID, Ranking: 1, TotalPoints: 40, CreatedAt: base.AddDate(0, 0, 2)},
		}

		data, err := generateRankingHistoryChart(history)
		require.NoError(t, err)
		require.Greater(t, len(data), 4)
		assert.Equal(t, pngMagic, data[:4])
	})

	t.Run("renders a placeholder when there is not enough history", func(t *testing.T) {
		data, err := generateRankingHistoryChart([]leaderboarddb.RankHistory{
			{UserID: userID, Ranking: 1, TotalPoints: 10, CreatedAt: base},
		})
		require.NoError(t, err)
		require.Greater(t, len(data), 4)
		assert.Equal(t, pngMagic, data[:4])
	})
}
