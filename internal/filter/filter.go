// Package filter is the pure query layer behind the report list screen.
// It never mutates or re-orders its input.
package filter

import (
	"strings"

	"github.com/civicpulse/civicpulse/internal/model"
)

// StatusAll passes every status through the status predicate.
const StatusAll = "all"

type Params struct {
	SearchTerm   string `json:"search_term"`
	StatusFilter string `json:"status_filter"`
}

// Query returns the issues matching both predicates, preserving input
// order. An empty search term and StatusAll are identity elements.
func Query(issues []model.Issue, params Params) []model.Issue {
	search := strings.ToLower(strings.TrimSpace(params.SearchTerm))
	status := params.StatusFilter

	out := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if !matchesSearch(issue, search) {
			continue
		}
		if !matchesStatus(issue, status) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func matchesSearch(issue model.Issue, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(issue.Title), search) ||
		strings.Contains(strings.ToLower(issue.Location), search)
}

func matchesStatus(issue model.Issue, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return issue.Status == model.IssueStatus(status)
}
