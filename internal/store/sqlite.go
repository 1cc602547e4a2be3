package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists contact-form submissions. It is the only durable
// state this service owns; identity and sessions live with the external
// auth service.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS contact_messages (
        id TEXT PRIMARY KEY, -- UUID
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        subject TEXT NOT NULL,
        message TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// CreateContactMessage inserts a submission, filling in its ID and
// creation time.
func (s *SQLiteStore) CreateContactMessage(msg *ContactMessage) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()

	_, err := s.db.Exec(
		"INSERT INTO contact_messages (id, name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// ListContactMessages returns the newest submissions first, up to limit.
func (s *SQLiteStore) ListContactMessages(limit int) ([]ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		"SELECT id, name, email, subject, message, created_at FROM contact_messages ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []ContactMessage
	for rows.Next() {
		var msg ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
