package matchqueue

// MatchLockJob locks a match's predictions when its lock time arrives.
type MatchLockJob struct {
	MatchID string `json:"match_id"`
}

// Kind returns the job type identifier for River.
func (MatchLockJob) Kind() string { return "match_lock" }
