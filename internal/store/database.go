package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/db"
)

// EmailThreadStore keeps broker/carrier email threads in PostgreSQL. This is
// the generic relational store behind the load email views; schema lives in
// migrations/.
type EmailThreadStore struct {
	db *db.DB
}

func NewEmailThreadStore(database *db.DB) *EmailThreadStore {
	return &EmailThreadStore{db: database}
}

// EmailThread groups the messages exchanged about one load.
type EmailThread struct {
	ID        string    `json:"id"`
	LoadID    string    `json:"loadId"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmailMessage is one email within a thread.
type EmailMessage struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"threadId"`
	Sender   string    `json:"sender"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// SaveThread inserts or refreshes a thread.
func (es *EmailThreadStore) SaveThread(t EmailThread) error {
	if t.ID == "" || t.LoadID == "" {
		return fmt.Errorf("thread id and load id are required")
	}
	query := `
		INSERT INTO email_threads (id, load_id, subject, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			subject = EXCLUDED.subject,
			updated_at = NOW()
	`
	if _, err := es.db.Exec(query, t.ID, t.LoadID, t.Subject); err != nil {
		return fmt.Errorf("failed to save email thread: %w", err)
	}
	return nil
}

// GetThread returns the thread or (nil, nil) when it does not exist.
func (es *EmailThreadStore) GetThread(id string) (*EmailThread, error) {
	if id == "" {
		return nil, fmt.Errorf("thread id is required")
	}
	var t EmailThread
	query := `
		SELECT id, load_id, subject, created_at, updated_at
		FROM email_threads
		WHERE id = $1
	`
	err := es.db.QueryRow(query, id).Scan(&t.ID, &t.LoadID, &t.Subject, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email thread: %w", err)
	}
	return &t, nil
}

// ListThreadsByLoad returns a load's threads, most recently updated first.
func (es *EmailThreadStore) ListThreadsByLoad(loadID string) ([]EmailThread, error) {
	if loadID == "" {
		return nil, fmt.Errorf("load id is required")
	}
	query := `
		SELECT id, load_id, subject, created_at, updated_at
		FROM email_threads
		WHERE load_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := es.db.Query(query, loadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list email threads: %w", err)
	}
	defer rows.Close()

	var threads []EmailThread
	for rows.Next() {
		var t EmailThread
		if err := rows.Scan(&t.ID, &t.LoadID, &t.Subject, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan email thread: %w", err)
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

// AppendEmail adds a message to a thread and bumps the thread's updated_at.
func (es *EmailThreadStore) AppendEmail(m EmailMessage) error {
	if m.ID == "" || m.ThreadID == "" {
		return fmt.Errorf("message id and thread id are required")
	}
	query := `
		INSERT INTO email_messages (id, thread_id, sender, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	sentAt := m.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	if _, err := es.db.Exec(query, m.ID, m.ThreadID, m.Sender, m.Body, sentAt); err != nil {
		return fmt.Errorf("failed to append email: %w", err)
	}
	if _, err := es.db.Exec(`UPDATE email_threads SET updated_at = NOW() WHERE id = $1`, m.ThreadID); err != nil {
		return fmt.Errorf("failed to touch email thread: %w", err)
	}
	return nil
}

// ListEmails returns a thread's messages in send order.
func (es *EmailThreadStore) ListEmails(threadID string) ([]EmailMessage, error) {
	if threadID == "" {
		return nil, fmt.Errorf("thread id is required")
	}
	query := `
		SELECT id, thread_id, sender, body, sent_at
		FROM email_messages
		WHERE thread_id = $1
		ORDER BY sent_at ASC
	`
	rows, err := es.db.Query(query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	defer rows.Close()

	var msgs []EmailMessage
	for rows.Next() {
		var m EmailMessage
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Sender, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
