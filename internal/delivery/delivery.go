// Package delivery fans recorded notifications out to the external
// channels. Everything here is fire-and-forget: a failed send is logged
// and dropped, never reported back to the mutation that triggered it.
package delivery

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
)

// PushSender is the websocket hub's delivery surface.
type PushSender interface {
	SendToUser(userID string, payload []byte)
}

// EmailSender is the SMTP mailer's delivery surface.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSSender is the SMS gateway's delivery surface.
type SMSSender interface {
	Send(to, message string) error
}

// Contact is what the dispatcher needs to reach a recipient off-app.
type Contact struct {
	Email string
	Phone string
}

// Directory resolves recipient ids to contact details. Account management
// lives outside this service; the directory is its narrow interface.
type Directory interface {
	Lookup(userID uuid.UUID) (Contact, bool)
}

// Dispatcher routes one notification to every channel the recipient has
// enabled. Any sender may be nil; that channel is simply skipped.
type Dispatcher struct {
	Push      PushSender
	Email     EmailSender
	SMS       SMSSender
	Directory Directory
}

func (d *Dispatcher) Deliver(n model.Notification, prefs model.ChannelPreferences) {
	if d.Push != nil && prefs.Push {
		payload, err := json.Marshal(n)
		if err != nil {
			log.Println("[Delivery]: failed to marshal notification", err)
		} else {
			d.Push.SendToUser(n.RecipientID.String(), payload)
		}
	}

	if d.Directory == nil {
		return
	}
	contact, ok := d.Directory.Lookup(n.RecipientID)
	if !ok {
		return
	}

	if d.Email != nil && prefs.Email && contact.Email != "" {
		if err := d.Email.Send(contact.Email, n.Title, n.Message); err != nil {
			log.Printf("[Delivery]: email to %s failed: %v", contact.Email, err)
		}
	}

	if d.SMS != nil && prefs.SMS && contact.Phone != "" {
		if err := d.SMS.Send(contact.Phone, n.Message); err != nil {
			log.Printf("[Delivery]: sms to %s failed: %v", contact.Phone, err)
		}
	}
}

// StaticDirectory is an in-memory Directory for deployments without an
// account service wired in.
type StaticDirectory struct {
	mu       sync.RWMutex
	contacts map[uuid.UUID]Contact
}

func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{contacts: make(map[uuid.UUID]Contact)}
}

func (d *StaticDirectory) Register(userID uuid.UUID, contact Contact) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.contacts[userID] = contact
}

func (d *StaticDirectory) Lookup(userID uuid.UUID) (Contact, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	contact, ok := d.contacts[userID]
	return contact, ok
}

// LogSMS is a stand-in SMS gateway that only logs. The real gateway is an
// external collaborator reporting delivery status out-of-band.
type LogSMS struct{}

func (LogSMS) Send(to, message string) error {
	log.Printf("[SMS]: to=%s message=%q", to, message)
	return nil
}
