package sharedtypes

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// UserID identifies a registered player.
type UserID uuid.UUID

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText renders the ID in canonical UUID form so JSON payloads carry
// a string rather than the raw byte array.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *UserID) UnmarshalText(data []byte) error {
	parsed, err := uuid.ParseBytes(data)
	if err != nil {
		return err
	}
	*id = UserID(parsed)
	return nil
}

func (id UserID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *UserID) Scan(src any) error {
	return (*uuid.UUID)(id).Scan(src)
}

// MatchID identifies a fixture.
type MatchID uuid.UUID

func (id MatchID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText renders the ID in canonical UUID form so JSON payloads carry
// a string rather than the raw byte array.
func (id MatchID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *MatchID) UnmarshalText(data []byte) error {
	parsed, err := uuid.ParseBytes(data)
	if err != nil {
		return err
	}
	*id = MatchID(parsed)
	return nil
}

func (id MatchID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *MatchID) Scan(src any) error {
	return (*uuid.UUID)(id).Scan(src)
}

// PhaseID identifies a tournament stage, e.g. "group-stage", "round-of-16".
type PhaseID string

// Score is a goal count. Always non-negative.
type Score int

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "LIVE"
	MatchFinished  MatchStatus = "FINISHED"
	MatchPostponed MatchStatus = "POSTPONED"
)
