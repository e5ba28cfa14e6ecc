package deps

import (
	"log"

	"github.com/civicpulse/civicpulse/config"
	"github.com/civicpulse/civicpulse/internal/archive"
	"github.com/civicpulse/civicpulse/internal/db"
	"github.com/civicpulse/civicpulse/internal/delivery"
	"github.com/civicpulse/civicpulse/internal/store"
	smtp "github.com/civicpulse/civicpulse/util/email"
	"github.com/civicpulse/civicpulse/util/storage"
	"github.com/civicpulse/civicpulse/util/websockets"
)

// Dependencies wires the domain stores to their external collaborators.
type Dependencies struct {
	DB            *db.DB
	Archive       *archive.Archiver
	Cloudinary    *storage.Cloudinary
	WebSocket     *websockets.WebSocketManager
	Directory     *delivery.StaticDirectory
	Issues        *store.IssueStore
	Upvotes       *store.UpvoteLedger
	Notifications *store.NotificationCenter
}

func New(cfg *config.Config) *Dependencies {
	websocket := websockets.NewWebSocketManager()
	directory := delivery.NewStaticDirectory()

	dispatcher := &delivery.Dispatcher{
		Push:      websocket,
		SMS:       delivery.LogSMS{},
		Directory: directory,
	}
	if cfg.SMTPHost != "" {
		dispatcher.Email = smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	notifications := store.NewNotificationCenter(dispatcher)
	issues := store.NewIssueStore(notifications)
	upvotes := store.NewUpvoteLedger(issues)

	d := &Dependencies{
		WebSocket:     websocket,
		Directory:     directory,
		Issues:        issues,
		Upvotes:       upvotes,
		Notifications: notifications,
	}

	if cfg.Dsn != "" {
		database, err := db.New(cfg.Dsn)
		if err != nil {
			log.Panicln("failed to connect to database", "error", err)
		}
		archiver, err := archive.New(database)
		if err != nil {
			log.Panicln("failed to initialise archive schema", "error", err)
		}
		d.DB = database
		d.Archive = archiver
		notifications.SetRecorder(archiver)
	}

	if cfg.CloudinaryCloudName != "" {
		d.Cloudinary = storage.NewCloudinary(cfg)
	}

	return d
}
