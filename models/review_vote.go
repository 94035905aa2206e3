package models

// ReviewVote is a single user's vote on a review. Vote is +1 or -1.
// At most one row exists per (review_id, user_id); the store enforces it
// with a unique key.
type ReviewVote struct {
	ID       int `json:"id"`
	ReviewID int `json:"review_id"`
	UserID   int `json:"user_id"`
	Vote     int `json:"vote"`
}

// VoteTally is the response shape for POST /review-votes. UserVote is
// "up", "down" or empty when the vote was toggled off.
type VoteTally struct {
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	UserVote  string `json:"userVote"`
}
