package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerWithIssue(t *testing.T) (*UpvoteLedger, uuid.UUID) {
	t.Helper()
	issues := NewIssueStore(nil)
	issue, err := issues.Create(validCreateRequest())
	require.NoError(t, err)
	return NewUpvoteLedger(issues), issue.ID
}

func TestToggleUpvote(t *testing.T) {
	ledger, issueID := newLedgerWithIssue(t)
	userID := uuid.New()

	result, err := ledger.Toggle(issueID, userID)
	require.NoError(t, err)
	assert.True(t, result.Upvoted)
	assert.Equal(t, 1, result.Count)
	assert.True(t, ledger.HasVoted(issueID, userID))
}

func TestToggleUpvoteIsInvolution(t *testing.T) {
	ledger, issueID := newLedgerWithIssue(t)
	userID := uuid.New()

	baseline := ledger.Count(issueID)

	_, err := ledger.Toggle(issueID, userID)
	require.NoError(t, err)
	result, err := ledger.Toggle(issueID, userID)
	require.NoError(t, err)

	assert.False(t, result.Upvoted)
	assert.Equal(t, baseline, result.Count)
	assert.False(t, ledger.HasVoted(issueID, userID))
}

func TestToggleUpvoteUnknownIssue(t *testing.T) {
	ledger, _ := newLedgerWithIssue(t)

	_, err := ledger.Toggle(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestCountUnknownIssueIsZero(t *testing.T) {
	ledger, _ := newLedgerWithIssue(t)

	// "No votes yet", not an error.
	assert.Equal(t, 0, ledger.Count(uuid.New()))
}

func TestUpvoteCountsDistinctUsers(t *testing.T) {
	ledger, issueID := newLedgerWithIssue(t)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Toggle(issueID, uuid.New())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, ledger.Count(issueID))
}
