package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind enum
type NotificationKind string

const (
	KindUpdate       NotificationKind = "update"
	KindResponse     NotificationKind = "response"
	KindResolved     NotificationKind = "resolved"
	KindAnnouncement NotificationKind = "announcement"
	KindSummary      NotificationKind = "summary"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case KindUpdate, KindResponse, KindResolved, KindAnnouncement, KindSummary:
		return true
	}
	return false
}

// Title returns the inbox heading for the kind.
func (k NotificationKind) Title() string {
	switch k {
	case KindUpdate:
		return "Issue Update"
	case KindResponse:
		return "New Response"
	case KindResolved:
		return "Issue Resolved"
	case KindAnnouncement:
		return "Community Update"
	case KindSummary:
		return "Weekly Summary"
	}
	return "Notification"
}

// Notification is a recipient-addressed, read-trackable event record.
// Immutable after creation except for the Read flag.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	IssueID     *uuid.UUID       `json:"issue_id,omitempty"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ChannelPreferences gates external delivery per recipient. The in-app
// inbox is unconditional and not affected by any of these switches.
type ChannelPreferences struct {
	Push         bool `json:"push"`
	Email        bool `json:"email"`
	SMS          bool `json:"sms"`
	WeeklyDigest bool `json:"weekly_digest"`
}

// DefaultChannelPreferences mirrors the defaults a fresh profile starts with.
func DefaultChannelPreferences() ChannelPreferences {
	return ChannelPreferences{
		Push:         true,
		Email:        true,
		SMS:          false,
		WeeklyDigest: true,
	}
}
