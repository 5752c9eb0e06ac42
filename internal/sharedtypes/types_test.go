package sharedtypes

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDJSONEncoding(t *testing.T) {
	userID := UserID(uuid.MustParse("5e0061e7-53a9-4f7d-9a48-2f3a1f1c6f8e"))
	matchID := MatchID(uuid.MustParse("c0a80101-0000-4000-8000-000000000042"))

	t.Run("IDs marshal as canonical UUID strings", func(t *testing.T) {
		payload := struct {
			UserID  UserID  `json:"user_id"`
			MatchID MatchID `json:"match_id"`
		}{UserID: userID, MatchID: matchID}

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"user_id":"5e0061e7-53a9-4f7d-9a48-2f3a1f1c6f8e","match_id":"c0a80101-0000-4000-8000-000000000042"}`,
			string(data))
	})

	t.Run("IDs unmarshal from UUID strings", func(t *testing.T) {
		var payload struct {
			UserID  UserID  `json:"user_id"`
			MatchID MatchID `json:"match_id"`
		}
		input := `{"user_id":"5e0061e7-53a9-4f7d-9a48-2f3a1f1c6f8e","match_id":"c0a80101-0000-4000-8000-000000000042"}`

		require.NoError(t, json.Unmarshal([]byte(input), &payload))
		assert.Equal(t, userID, payload.UserID)
		assert.Equal(t, matchID, payload.MatchID)
	})

	t.Run("malformed UUID strings are rejected", func(t *testing.T) {
		var id UserID
		err := json.Unmarshal([]byte(`"not-a-uuid"`), &id)
		require.Error(t, err)
	})
}

func TestIDSQLRoundTrip(t *testing.T) {
	userID := UserID(uuid.New())

	value, err := userID.Value()
	require.NoError(t, err)

	var scanned UserID
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, userID, scanned)

	var matchID MatchID
	require.NoError(t, matchID.Scan("c0a80101-0000-4000-8000-000000000042"))
	assert.Equal(t, "c0a80101-0000-4000-8000-000000000042", matchID.String())
}
