package store

import "time"

// ContactMessage is a persisted contact-form submission.
type ContactMessage struct {
	ID        string    `json:"id"` // UUID
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
