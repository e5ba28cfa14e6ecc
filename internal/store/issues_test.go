package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() model.CreateIssueRequest {
	return model.CreateIssueRequest{
		Title:       "Broken streetlight",
		Description: "Street light not working for 3 days",
		Category:    model.CategoryLights,
		Priority:    model.PriorityHigh,
		Location:    "Main Street & 5th Avenue",
		ReporterID:  uuid.New(),
	}
}

func TestCreateIssue(t *testing.T) {
	s := NewIssueStore(nil)

	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, issue.Status)
	assert.Equal(t, 0, issue.Progress)
	require.Len(t, issue.Timeline, 1)
	assert.Equal(t, "Report Submitted", issue.Timeline[0].StatusLabel)
	assert.True(t, issue.Timeline[0].Completed)
}

func TestCreateIssueValidation(t *testing.T) {
	s := NewIssueStore(nil)

	testCases := []struct {
		name   string
		mutate func(*model.CreateIssueRequest)
	}{
		{"empty title", func(r *model.CreateIssueRequest) { r.Title = "" }},
		{"blank title", func(r *model.CreateIssueRequest) { r.Title = "   " }},
		{"empty description", func(r *model.CreateIssueRequest) { r.Description = "" }},
		{"unknown category", func(r *model.CreateIssueRequest) { r.Category = "potholes" }},
		{"unknown priority", func(r *model.CreateIssueRequest) { r.Priority = "critical" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := s.Create(req)
			require.Error(t, err)
			assert.True(t, IsValidation(err), "want ValidationError, got %v", err)
		})
	}
}

func TestTransitionHappyPath(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	issue, err = s.Transition(issue.ID, model.StatusInProgress, "Crew dispatched")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, issue.Status)
	require.Len(t, issue.Timeline, 3)
	assert.Equal(t, "Under Review", issue.Timeline[1].StatusLabel)
	assert.True(t, issue.Timeline[1].Completed)
	assert.Equal(t, "In Progress", issue.Timeline[2].StatusLabel)
	assert.False(t, issue.Timeline[2].Completed)

	issue, err = s.Transition(issue.ID, model.StatusResolved, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, issue.Status)
	assert.Equal(t, 100, issue.Progress)
	require.Len(t, issue.Timeline, 4)
	assert.Equal(t, "Resolved", issue.Timeline[3].StatusLabel)
	assert.True(t, issue.Timeline[3].Completed)

	_, err = s.SetProgress(issue.ID, 50)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTransitionEdges(t *testing.T) {
	testCases := []struct {
		from    model.IssueStatus
		to      model.IssueStatus
		allowed bool
	}{
		{model.StatusPending, model.StatusInProgress, true},
		{model.StatusPending, model.StatusResolved, true},
		{model.StatusPending, model.StatusRejected, true},
		{model.StatusInProgress, model.StatusResolved, true},
		{model.StatusInProgress, model.StatusRejected, true},
		{model.StatusPending, model.StatusPending, false},
		{model.StatusInProgress, model.StatusPending, false},
		{model.StatusInProgress, model.StatusInProgress, false},
		{model.StatusResolved, model.StatusInProgress, false},
		{model.StatusResolved, model.StatusRejected, false},
		{model.StatusResolved, model.StatusResolved, false},
		{model.StatusRejected, model.StatusInProgress, false},
		{model.StatusRejected, model.StatusResolved, false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s->%s", tc.from, tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, allowedTransition(tc.from, tc.to))
		})
	}
}

func TestTransitionRejectedFromStore(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	_, err = s.Transition(issue.ID, model.StatusRejected, "Duplicate report")
	require.NoError(t, err)

	// Terminal: every further edge must fail.
	for _, next := range []model.IssueStatus{model.StatusPending, model.StatusInProgress, model.StatusResolved, model.StatusRejected} {
		_, err := s.Transition(issue.ID, next, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}

	// Rejected keeps the last progress value.
	got, err := s.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestTransitionUnknownIssue(t *testing.T) {
	s := NewIssueStore(nil)
	_, err := s.Transition(uuid.New(), model.StatusInProgress, "")
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestSetProgressClampsAndNeverDecreases(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	got, err := s.SetProgress(issue.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	got, err = s.SetProgress(issue.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)

	issue, err = s.Create(validCreateRequest())
	require.NoError(t, err)

	got, err = s.SetProgress(issue.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Progress)

	got, err = s.SetProgress(issue.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Progress)
}

func TestAddUpdateOnTerminalIssue(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	_, err = s.Transition(issue.ID, model.StatusResolved, "")
	require.NoError(t, err)

	// Post-resolution clarifications stay permitted.
	got, err := s.AddUpdate(issue.ID, uuid.New(), "Replacement bulb under warranty")
	require.NoError(t, err)
	assert.Equal(t, "Update", got.Timeline[len(got.Timeline)-1].StatusLabel)
	assert.Equal(t, model.StatusResolved, got.Status)
}

func TestEditDetailsLockedAfterFirstTransition(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	got, err := s.EditDetails(issue.ID, "Broken streetlight on Oak", "Now flickering as well")
	require.NoError(t, err)
	assert.Equal(t, "Broken streetlight on Oak", got.Title)

	_, err = s.Transition(issue.ID, model.StatusInProgress, "")
	require.NoError(t, err)

	_, err = s.EditDetails(issue.ID, "New title", "New description")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestListPreservesCreationOrder(t *testing.T) {
	s := NewIssueStore(nil)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		req := validCreateRequest()
		req.Title = fmt.Sprintf("Issue %d", i)
		issue, err := s.Create(req)
		require.NoError(t, err)
		ids = append(ids, issue.ID)
	}

	issues := s.List()
	require.Len(t, issues, 5)
	for i, issue := range issues {
		assert.Equal(t, ids[i], issue.ID)
	}
}

func TestStats(t *testing.T) {
	s := NewIssueStore(nil)

	first, err := s.Create(validCreateRequest())
	require.NoError(t, err)
	second, err := s.Create(validCreateRequest())
	require.NoError(t, err)
	_, err = s.Create(validCreateRequest())
	require.NoError(t, err)

	_, err = s.Transition(first.ID, model.StatusInProgress, "")
	require.NoError(t, err)
	_, err = s.Transition(second.ID, model.StatusResolved, "")
	require.NoError(t, err)

	stats := s.Stats(s.List())
	assert.Equal(t, model.IssueStats{Total: 3, Pending: 1, InProgress: 1, Resolved: 1}, stats)
}

func TestReturnedCopiesAreDetached(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	issue.Timeline[0].StatusLabel = "tampered"
	issue.Title = "tampered"

	got, err := s.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Report Submitted", got.Timeline[0].StatusLabel)
	assert.Equal(t, "Broken streetlight", got.Title)
}

func TestConcurrentProgressWrites(t *testing.T) {
	s := NewIssueStore(nil)
	issue, err := s.Create(validCreateRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			_, _ = s.SetProgress(issue.ID, value)
		}(i)
	}
	wg.Wait()

	got, err := s.Get(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
}

func TestConcurrentCreates(t *testing.T) {
	s := NewIssueStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(validCreateRequest())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.List(), 20)
}
