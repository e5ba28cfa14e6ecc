package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
)

// Dispatcher hands a recorded notification to the external delivery
// channels (push/email/sms). Delivery is fire-and-forget: its failure never
// surfaces back to the mutation that produced the notification.
type Dispatcher interface {
	Deliver(n model.Notification, prefs model.ChannelPreferences)
}

// Recorder mirrors notification state into durable storage. Like delivery,
// recording is fire-and-forget and never fails the mutation.
type Recorder interface {
	SaveNotification(n model.Notification)
	DeleteNotification(notificationID uuid.UUID)
}

// NotificationCenter owns Notification records and per-recipient channel
// preferences. The in-app inbox records unconditionally; preferences only
// gate external delivery.
type NotificationCenter struct {
	mu            sync.RWMutex
	notifications []*model.Notification
	byID          map[uuid.UUID]*model.Notification
	prefs         map[uuid.UUID]model.ChannelPreferences
	dispatcher    Dispatcher
	recorder      Recorder
}

// SetRecorder attaches durable storage. Optional; nil means memory-only.
func (c *NotificationCenter) SetRecorder(recorder Recorder) {
	c.recorder = recorder
}

func NewNotificationCenter(dispatcher Dispatcher) *NotificationCenter {
	return &NotificationCenter{
		byID:       make(map[uuid.UUID]*model.Notification),
		prefs:      make(map[uuid.UUID]model.ChannelPreferences),
		dispatcher: dispatcher,
	}
}

// OnIssueTransition derives a notification for the reporter from a status
// change. Invoked by IssueStore after the transition committed.
func (c *NotificationCenter) OnIssueTransition(issue model.Issue, previous, next model.IssueStatus, note string) {
	var kind model.NotificationKind
	switch next {
	case model.StatusResolved:
		kind = model.KindResolved
	default:
		kind = model.KindUpdate
	}

	message := transitionText(issue, next, note)
	c.record(kind, &issue.ID, issue.ReporterID, message)
}

// OnUpdatePosted notifies the reporter that a response was added.
func (c *NotificationCenter) OnUpdatePosted(issue model.Issue, author uuid.UUID, message string) {
	text := fmt.Sprintf("New response on your report %q: %s", issue.Title, message)
	c.record(model.KindResponse, &issue.ID, issue.ReporterID, text)
}

// Announce records a community announcement for each recipient. These are
// issue-less notifications.
func (c *NotificationCenter) Announce(recipients []uuid.UUID, message string) {
	for _, recipient := range recipients {
		c.record(model.KindAnnouncement, nil, recipient, message)
	}
}

// WeeklySummary records the weekly digest for one recipient. Summaries are
// digest-only content: recipients who disabled the weekly digest get
// nothing at all, not even an inbox entry.
func (c *NotificationCenter) WeeklySummary(recipientID uuid.UUID, issuesReported int) {
	if !c.Preferences(recipientID).WeeklyDigest {
		return
	}
	message := fmt.Sprintf("%d issues reported this week in your neighborhood", issuesReported)
	c.record(model.KindSummary, nil, recipientID, message)
}

func (c *NotificationCenter) record(kind model.NotificationKind, issueID *uuid.UUID, recipientID uuid.UUID, message string) {
	n := &model.Notification{
		ID:          uuid.New(),
		IssueID:     issueID,
		RecipientID: recipientID,
		Kind:        kind,
		Title:       kind.Title(),
		Message:     message,
		Read:        false,
		CreatedAt:   time.Now(),
	}

	c.mu.Lock()
	c.notifications = append(c.notifications, n)
	c.byID[n.ID] = n
	prefs := c.preferencesLocked(recipientID)
	c.mu.Unlock()

	if c.recorder != nil {
		go c.recorder.SaveNotification(*n)
	}
	if c.dispatcher == nil {
		return
	}
	if !prefs.Push && !prefs.Email && !prefs.SMS {
		return
	}
	go c.dispatcher.Deliver(*n, prefs)
}

// List returns the recipient's notifications, newest first.
func (c *NotificationCenter) List(recipientID uuid.UUID) []model.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Notification, 0)
	for i := len(c.notifications) - 1; i >= 0; i-- {
		if c.notifications[i].RecipientID == recipientID {
			out = append(out, *c.notifications[i])
		}
	}
	return out
}

// MarkRead flags a notification as read. Marking an already-read
// notification is a no-op.
func (c *NotificationCenter) MarkRead(notificationID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.byID[notificationID]
	if !ok {
		return ErrNotificationNotFound
	}
	if !n.Read {
		n.Read = true
		if c.recorder != nil {
			go c.recorder.SaveNotification(*n)
		}
	}
	return nil
}

// MarkAllRead flags every notification of the recipient as read.
func (c *NotificationCenter) MarkAllRead(recipientID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			if c.recorder != nil {
				go c.recorder.SaveNotification(*n)
			}
		}
	}
}

// Delete removes a notification permanently. Deleting an absent id is a
// silent no-op; the UI may race a double-tap.
func (c *NotificationCenter) Delete(notificationID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[notificationID]; !ok {
		return
	}
	delete(c.byID, notificationID)
	for i, n := range c.notifications {
		if n.ID == notificationID {
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			break
		}
	}
	if c.recorder != nil {
		go c.recorder.DeleteNotification(notificationID)
	}
}

// UnreadCount returns the recipient's unread total for the badge.
func (c *NotificationCenter) UnreadCount(recipientID uuid.UUID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, n := range c.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count
}

// Preferences returns the recipient's channel preferences, defaulting for
// recipients who never saved any.
func (c *NotificationCenter) Preferences(recipientID uuid.UUID) model.ChannelPreferences {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.preferencesLocked(recipientID)
}

func (c *NotificationCenter) preferencesLocked(recipientID uuid.UUID) model.ChannelPreferences {
	if prefs, ok := c.prefs[recipientID]; ok {
		return prefs
	}
	return model.DefaultChannelPreferences()
}

// SetPreferences stores the recipient's channel preferences.
func (c *NotificationCenter) SetPreferences(recipientID uuid.UUID, prefs model.ChannelPreferences) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs[recipientID] = prefs
}

func transitionText(issue model.Issue, next model.IssueStatus, note string) string {
	var text string
	switch next {
	case model.StatusInProgress:
		text = fmt.Sprintf("Your reported issue %q is now in progress", issue.Title)
	case model.StatusResolved:
		text = fmt.Sprintf("Great news! Your report %q has been resolved", issue.Title)
	case model.StatusRejected:
		text = fmt.Sprintf("Your report %q was reviewed and rejected", issue.Title)
	default:
		text = fmt.Sprintf("Your report %q was updated", issue.Title)
	}
	if strings.TrimSpace(note) != "" {
		text += ": " + note
	}
	return text
}
