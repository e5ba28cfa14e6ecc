package store

import (
	"sync"
	"time"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
)

// issueChecker is the slice of IssueStore the ledger needs: existence only.
type issueChecker interface {
	Exists(issueID uuid.UUID) bool
}

// UpvoteLedger tracks one boolean vote per (issue, user) pair. Issues are
// referenced by id only; the ledger never holds issue records.
type UpvoteLedger struct {
	mu     sync.RWMutex
	votes  map[uuid.UUID]map[uuid.UUID]time.Time
	issues issueChecker
}

func NewUpvoteLedger(issues issueChecker) *UpvoteLedger {
	return &UpvoteLedger{
		votes:  make(map[uuid.UUID]map[uuid.UUID]time.Time),
		issues: issues,
	}
}

// Toggle flips the (issue, user) membership and returns the new state and
// count. An unknown issue id is an error; double-toggling restores the
// original state exactly.
func (l *UpvoteLedger) Toggle(issueID, userID uuid.UUID) (model.UpvoteResult, error) {
	if !l.issues.Exists(issueID) {
		return model.UpvoteResult{}, ErrIssueNotFound
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	voters := l.votes[issueID]
	if voters == nil {
		voters = make(map[uuid.UUID]time.Time)
		l.votes[issueID] = voters
	}

	if _, voted := voters[userID]; voted {
		delete(voters, userID)
		return model.UpvoteResult{Upvoted: false, Count: len(voters)}, nil
	}
	voters[userID] = time.Now()
	return model.UpvoteResult{Upvoted: true, Count: len(voters)}, nil
}

// Count returns the number of distinct voters. Unknown issues count zero;
// "no votes yet" is not an error.
func (l *UpvoteLedger) Count(issueID uuid.UUID) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.votes[issueID])
}

// HasVoted reports whether the user currently upvotes the issue.
func (l *UpvoteLedger) HasVoted(issueID, userID uuid.UUID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.votes[issueID][userID]
	return ok
}
