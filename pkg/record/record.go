// Package record defines the leaderboard record types and their JSON codec.
package record

// ScoreRecord represents one player's persisted leaderboard entry.
// ID is server-assigned and stays 0 until the record exists remotely.
// CreatedAt is an ISO-8601 string; the remote store overwrites it on
// every score update, so it is not a stable creation time.
type ScoreRecord struct {
	ID         int    `json:"id"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	CreatedAt  string `json:"createdAt"`
}

// LeaderboardPage is one bounded slice of the leaderboard.
// Total is the store's total-count hint, -1 when the store did not send one.
// Ordering is whatever the store returned.
type LeaderboardPage struct {
	Records []ScoreRecord
	Total   int
}

// RankRecord is the summary returned by the rank-lookup endpoint
type RankRecord struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}
