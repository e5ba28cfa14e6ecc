package delivery

import (
	"testing"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingPush struct {
	sent []string
}

func (p *recordingPush) SendToUser(userID string, payload []byte) {
	p.sent = append(p.sent, userID)
}

type recordingEmail struct {
	sent []string
}

func (e *recordingEmail) Send(to, subject, body string) error {
	e.sent = append(e.sent, to)
	return nil
}

type recordingSMS struct {
	sent []string
}

func (s *recordingSMS) Send(to, message string) error {
	s.sent = append(s.sent, to)
	return nil
}

func notificationFor(recipient uuid.UUID) model.Notification {
	return model.Notification{
		ID:          uuid.New(),
		RecipientID: recipient,
		Kind:        model.KindUpdate,
		Title:       "Issue Update",
		Message:     "Your reported issue is now in progress",
	}
}

func TestDeliverRoutesPerPreference(t *testing.T) {
	recipient := uuid.New()
	push := &recordingPush{}
	email := &recordingEmail{}
	sms := &recordingSMS{}
	directory := NewStaticDirectory()
	directory.Register(recipient, Contact{Email: "jane@example.com", Phone: "+905551234567"})

	d := &Dispatcher{Push: push, Email: email, SMS: sms, Directory: directory}

	d.Deliver(notificationFor(recipient), model.ChannelPreferences{Push: true, Email: true, SMS: false})

	assert.Equal(t, []string{recipient.String()}, push.sent)
	assert.Equal(t, []string{"jane@example.com"}, email.sent)
	assert.Empty(t, sms.sent)
}

func TestDeliverSkipsUnknownRecipients(t *testing.T) {
	email := &recordingEmail{}
	d := &Dispatcher{Email: email, Directory: NewStaticDirectory()}

	d.Deliver(notificationFor(uuid.New()), model.ChannelPreferences{Email: true})

	assert.Empty(t, email.sent)
}

func TestDeliverWithNilSenders(t *testing.T) {
	d := &Dispatcher{}

	// Nothing wired is a valid deployment; must not panic.
	d.Deliver(notificationFor(uuid.New()), model.DefaultChannelPreferences())
}
