package model

import (
	"time"

	"github.com/google/uuid"
)

// Upvote is a per-user, per-issue show of support, deduplicated by pair.
type Upvote struct {
	IssueID   uuid.UUID `json:"issue_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UpvoteResult is what the detail screen's heart control renders from.
type UpvoteResult struct {
	Upvoted bool `json:"upvoted"`
	Count   int  `json:"count"`
}
