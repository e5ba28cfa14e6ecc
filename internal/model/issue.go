package model

import (
	"time"

	"github.com/google/uuid"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in-progress"
	StatusResolved   IssueStatus = "resolved"
	StatusRejected   IssueStatus = "rejected"
)

// Valid reports whether s is one of the closed status set.
func (s IssueStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is accepted from s.
func (s IssueStatus) Terminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// Label returns the display label shown on status badges.
func (s IssueStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusRejected:
		return "Rejected"
	}
	return "Unknown"
}

// IssueCategory enum
type IssueCategory string

const (
	CategoryWaste  IssueCategory = "waste"
	CategoryRoads  IssueCategory = "roads"
	CategoryLights IssueCategory = "lights"
	CategoryWater  IssueCategory = "water"
	CategoryParks  IssueCategory = "parks"
	CategoryOther  IssueCategory = "other"
)

func (c IssueCategory) Valid() bool {
	switch c {
	case CategoryWaste, CategoryRoads, CategoryLights, CategoryWater, CategoryParks, CategoryOther:
		return true
	}
	return false
}

func (c IssueCategory) Label() string {
	switch c {
	case CategoryWaste:
		return "Waste Management"
	case CategoryRoads:
		return "Roads & Traffic"
	case CategoryLights:
		return "Street Lighting"
	case CategoryWater:
		return "Water & Drainage"
	case CategoryParks:
		return "Parks & Recreation"
	case CategoryOther:
		return "Other"
	}
	return "Unknown"
}

// IssuePriority enum
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
	PriorityUrgent IssuePriority = "urgent"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p IssuePriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low Priority"
	case PriorityMedium:
		return "Medium Priority"
	case PriorityHigh:
		return "High Priority"
	case PriorityUrgent:
		return "Urgent"
	}
	return "Unknown"
}

// TimelineEntry is an append-only milestone on an issue. Completed reflects
// whether the phase had finished as of the append time.
type TimelineEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	StatusLabel string    `json:"status_label"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

// Issue is a single reported civic problem and its full lifecycle record.
type Issue struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    IssueCategory   `json:"category"`
	Priority    IssuePriority   `json:"priority"`
	Location    string          `json:"location"`
	Status      IssueStatus     `json:"status"`
	Progress    int             `json:"progress"`
	Timeline    []TimelineEntry `json:"timeline"`
	Attachments []string        `json:"attachments,omitempty"`
	ReporterID  uuid.UUID       `json:"reporter_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateIssueRequest struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description" validate:"required,max=2000"`
	Category    IssueCategory `json:"category" validate:"required,issue_category"`
	Priority    IssuePriority `json:"priority" validate:"required,issue_priority"`
	Location    string        `json:"location" validate:"max=200"`
	Attachments []string      `json:"attachments,omitempty"`
	ReporterID  uuid.UUID     `json:"-"`
}

type TransitionRequest struct {
	Status IssueStatus `json:"status" validate:"required,issue_status"`
	Note   string      `json:"note" validate:"max=500"`
}

type ProgressRequest struct {
	Progress int `json:"progress"`
}

type UpdateNoteRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// IssueStats backs the status summary strip on the report list screen.
type IssueStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}
