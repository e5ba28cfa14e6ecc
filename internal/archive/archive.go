// Package archive mirrors the in-memory state into Postgres so reports
// survive restarts and can feed reporting queries. The in-memory stores
// stay authoritative: archive writes run after the mutation committed and
// their failure is logged, never propagated.
package archive

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/civicpulse/civicpulse/internal/db"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const writeTimeout = 5 * time.Second

type Archiver struct {
	DB *db.DB
}

func New(database *db.DB) (*Archiver, error) {
	a := &Archiver{DB: database}
	if err := a.initSchema(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Archiver) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS issues (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			priority TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			progress INT NOT NULL DEFAULT 0,
			attachments JSONB,
			reporter_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS issue_timeline (
			issue_id UUID NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
			position INT NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL,
			status_label TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL,
			PRIMARY KEY (issue_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS upvotes (
			issue_id UUID NOT NULL,
			user_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (issue_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			issue_id UUID,
			recipient_id UUID NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := a.DB.Pool().Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveIssue upserts the issue row and rewrites its timeline atomically.
func (a *Archiver) SaveIssue(issue model.Issue) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	attachments, err := json.Marshal(issue.Attachments)
	if err != nil {
		log.Println("[Archive]: failed to marshal attachments", err)
		return
	}

	err = a.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO issues (
				id, title, description, category, priority, location,
				status, progress, attachments, reporter_id, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				status = EXCLUDED.status,
				progress = EXCLUDED.progress,
				attachments = EXCLUDED.attachments,
				updated_at = EXCLUDED.updated_at
		`
		if _, err := tx.Exec(ctx, query,
			issue.ID, issue.Title, issue.Description, issue.Category, issue.Priority,
			issue.Location, issue.Status, issue.Progress, attachments,
			issue.ReporterID, issue.CreatedAt, issue.UpdatedAt,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM issue_timeline WHERE issue_id = $1`, issue.ID); err != nil {
			return err
		}
		for i, entry := range issue.Timeline {
			if _, err := tx.Exec(ctx, `
				INSERT INTO issue_timeline (issue_id, position, occurred_at, status_label, description, completed)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				issue.ID, i, entry.Timestamp, entry.StatusLabel, entry.Description, entry.Completed,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[Archive]: failed to save issue %s: %v", issue.ID, err)
	}
}

// SaveUpvote mirrors the current state of one (issue, user) pair.
func (a *Archiver) SaveUpvote(issueID, userID uuid.UUID, upvoted bool) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	if upvoted {
		_, err = a.DB.Pool().Exec(ctx, `
			INSERT INTO upvotes (issue_id, user_id) VALUES ($1, $2)
			ON CONFLICT (issue_id, user_id) DO NOTHING`, issueID, userID)
	} else {
		_, err = a.DB.Pool().Exec(ctx, `
			DELETE FROM upvotes WHERE issue_id = $1 AND user_id = $2`, issueID, userID)
	}
	if err != nil {
		log.Printf("[Archive]: failed to save upvote %s/%s: %v", issueID, userID, err)
	}
}

// SaveNotification upserts a notification record.
func (a *Archiver) SaveNotification(n model.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	_, err := a.DB.Pool().Exec(ctx, `
		INSERT INTO notifications (id, issue_id, recipient_id, kind, title, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET read = EXCLUDED.read`,
		n.ID, n.IssueID, n.RecipientID, n.Kind, n.Title, n.Message, n.Read, n.CreatedAt)
	if err != nil {
		log.Printf("[Archive]: failed to save notification %s: %v", n.ID, err)
	}
}

// DeleteNotification removes a notification record.
func (a *Archiver) DeleteNotification(notificationID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if _, err := a.DB.Pool().Exec(ctx, `DELETE FROM notifications WHERE id = $1`, notificationID); err != nil {
		log.Printf("[Archive]: failed to delete notification %s: %v", notificationID, err)
	}
}
