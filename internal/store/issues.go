package store

import (
	"strings"
	"sync"
	"time"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
)

// TransitionHook receives issue activity after the mutation has committed.
// Hook failures never roll back the triggering mutation.
type TransitionHook interface {
	OnIssueTransition(issue model.Issue, previous, next model.IssueStatus, note string)
	OnUpdatePosted(issue model.Issue, author uuid.UUID, message string)
}

// issueEntry pairs an issue with its own lock so mutations on independent
// ids proceed concurrently. The store map lock is only held to look the
// entry up, never across a mutation.
type issueEntry struct {
	mu    sync.Mutex
	issue model.Issue
}

// IssueStore owns all Issue records and their timelines. It is the single
// mutation authority: callers only ever see copies.
type IssueStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*issueEntry
	order   []uuid.UUID
	hook    TransitionHook
}

func NewIssueStore(hook TransitionHook) *IssueStore {
	return &IssueStore{
		entries: make(map[uuid.UUID]*issueEntry),
		hook:    hook,
	}
}

// Create validates the request and registers a new pending issue with a
// single submitted timeline entry.
func (s *IssueStore) Create(req model.CreateIssueRequest) (model.Issue, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.Issue{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Description) == "" {
		return model.Issue{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !req.Category.Valid() {
		return model.Issue{}, &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if !req.Priority.Valid() {
		return model.Issue{}, &ValidationError{Field: "priority", Reason: "unknown priority"}
	}

	now := time.Now()
	issue := model.Issue{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Location:    req.Location,
		Status:      model.StatusPending,
		Progress:    0,
		Attachments: append([]string(nil), req.Attachments...),
		ReporterID:  req.ReporterID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Timeline: []model.TimelineEntry{{
			Timestamp:   now,
			StatusLabel: "Report Submitted",
			Description: "Issue reported by citizen",
			Completed:   true,
		}},
	}

	s.mu.Lock()
	s.entries[issue.ID] = &issueEntry{issue: issue}
	s.order = append(s.order, issue.ID)
	s.mu.Unlock()

	return copyIssue(issue), nil
}

func allowedTransition(from, to model.IssueStatus) bool {
	if from == to || from.Terminal() {
		return false
	}
	switch from {
	case model.StatusPending:
		return to == model.StatusInProgress || to == model.StatusResolved || to == model.StatusRejected
	case model.StatusInProgress:
		return to == model.StatusResolved || to == model.StatusRejected
	}
	return false
}

// finishedPhaseLabel names the phase a transition closes out.
func finishedPhaseLabel(from model.IssueStatus) string {
	if from == model.StatusPending {
		return "Under Review"
	}
	return "Work in Progress"
}

// Transition moves an issue along the lifecycle. On success it appends a
// completed entry for the phase just closed and, for a non-terminal target,
// an open entry for the phase just started, then notifies the hook.
func (s *IssueStore) Transition(issueID uuid.UUID, newStatus model.IssueStatus, note string) (model.Issue, error) {
	if !newStatus.Valid() {
		return model.Issue{}, ErrInvalidTransition
	}

	entry, err := s.lookup(issueID)
	if err != nil {
		return model.Issue{}, err
	}

	entry.mu.Lock()
	previous := entry.issue.Status
	if !allowedTransition(previous, newStatus) {
		entry.mu.Unlock()
		return model.Issue{}, ErrInvalidTransition
	}

	now := time.Now()
	if newStatus.Terminal() {
		desc := note
		if desc == "" {
			desc = "Issue marked as " + strings.ToLower(newStatus.Label())
		}
		entry.issue.Timeline = append(entry.issue.Timeline, model.TimelineEntry{
			Timestamp:   now,
			StatusLabel: newStatus.Label(),
			Description: desc,
			Completed:   true,
		})
		if newStatus == model.StatusResolved {
			entry.issue.Progress = 100
		}
	} else {
		desc := note
		if desc == "" {
			desc = "Assigned to the responsible department"
		}
		entry.issue.Timeline = append(entry.issue.Timeline,
			model.TimelineEntry{
				Timestamp:   now,
				StatusLabel: finishedPhaseLabel(previous),
				Description: desc,
				Completed:   true,
			},
			model.TimelineEntry{
				Timestamp:   now,
				StatusLabel: newStatus.Label(),
				Completed:   false,
			},
		)
	}
	entry.issue.Status = newStatus
	entry.issue.UpdatedAt = now
	updated := copyIssue(entry.issue)
	entry.mu.Unlock()

	if s.hook != nil {
		s.hook.OnIssueTransition(updated, previous, newStatus, note)
	}
	return updated, nil
}

// SetProgress clamps value into [0,100]. Progress never decreases and is
// frozen once the issue is terminal.
func (s *IssueStore) SetProgress(issueID uuid.UUID, value int) (model.Issue, error) {
	entry, err := s.lookup(issueID)
	if err != nil {
		return model.Issue{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.issue.Status.Terminal() {
		return model.Issue{}, ErrInvalidState
	}
	if value > 100 {
		value = 100
	}
	if value < 0 {
		value = 0
	}
	if value > entry.issue.Progress {
		entry.issue.Progress = value
		entry.issue.UpdatedAt = time.Now()
	}
	return copyIssue(entry.issue), nil
}

// AddUpdate appends an update note without changing status. Permitted on
// terminal issues for post-resolution clarifications.
func (s *IssueStore) AddUpdate(issueID, author uuid.UUID, message string) (model.Issue, error) {
	if strings.TrimSpace(message) == "" {
		return model.Issue{}, &ValidationError{Field: "message", Reason: "must not be empty"}
	}

	entry, err := s.lookup(issueID)
	if err != nil {
		return model.Issue{}, err
	}

	entry.mu.Lock()
	now := time.Now()
	entry.issue.Timeline = append(entry.issue.Timeline, model.TimelineEntry{
		Timestamp:   now,
		StatusLabel: "Update",
		Description: message,
		Completed:   true,
	})
	entry.issue.UpdatedAt = now
	updated := copyIssue(entry.issue)
	entry.mu.Unlock()

	if s.hook != nil {
		s.hook.OnUpdatePosted(updated, author, message)
	}
	return updated, nil
}

// EditDetails updates title and description. Only allowed while the issue
// is still pending; once the first transition happened the report is locked.
func (s *IssueStore) EditDetails(issueID uuid.UUID, title, description string) (model.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return model.Issue{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(description) == "" {
		return model.Issue{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	entry, err := s.lookup(issueID)
	if err != nil {
		return model.Issue{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.issue.Status != model.StatusPending {
		return model.Issue{}, ErrInvalidState
	}
	entry.issue.Title = title
	entry.issue.Description = description
	entry.issue.UpdatedAt = time.Now()
	return copyIssue(entry.issue), nil
}

// Get returns a copy of the issue.
func (s *IssueStore) Get(issueID uuid.UUID) (model.Issue, error) {
	entry, err := s.lookup(issueID)
	if err != nil {
		return model.Issue{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyIssue(entry.issue), nil
}

// Exists reports whether the id is known without copying the record.
func (s *IssueStore) Exists(issueID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[issueID]
	return ok
}

// List returns copies of all issues in creation order.
func (s *IssueStore) List() []model.Issue {
	s.mu.RLock()
	ids := append([]uuid.UUID(nil), s.order...)
	s.mu.RUnlock()

	issues := make([]model.Issue, 0, len(ids))
	for _, id := range ids {
		entry, err := s.lookup(id)
		if err != nil {
			continue
		}
		entry.mu.Lock()
		issues = append(issues, copyIssue(entry.issue))
		entry.mu.Unlock()
	}
	return issues
}

// ListByReporter returns copies of the reporter's issues in creation order.
func (s *IssueStore) ListByReporter(reporterID uuid.UUID) []model.Issue {
	all := s.List()
	mine := make([]model.Issue, 0, len(all))
	for _, issue := range all {
		if issue.ReporterID == reporterID {
			mine = append(mine, issue)
		}
	}
	return mine
}

// Stats counts issues per status for the list screen's summary strip.
func (s *IssueStore) Stats(issues []model.Issue) model.IssueStats {
	stats := model.IssueStats{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusResolved:
			stats.Resolved++
		case model.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

func (s *IssueStore) lookup(issueID uuid.UUID) (*issueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[issueID]
	if !ok {
		return nil, ErrIssueNotFound
	}
	return entry, nil
}

func copyIssue(issue model.Issue) model.Issue {
	out := issue
	out.Timeline = append([]model.TimelineEntry(nil), issue.Timeline...)
	out.Attachments = append([]string(nil), issue.Attachments...)
	return out
}
