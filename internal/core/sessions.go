package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle chat session survives before its
// transcript is dropped.
const DefaultSessionTTL = 30 * time.Minute

// SessionRegistry keeps one SupportChat per browser session, keyed by an
// opaque cookie value. Transcripts are volatile: they live in memory only
// and vanish on eviction or restart, matching a full page reload.
type SessionRegistry struct {
	completer Completer
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	chat     *SupportChat
	lastSeen time.Time
}

func NewSessionRegistry(completer Completer, ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRegistry{
		completer: completer,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*sessionEntry),
	}
}

// NewID mints a fresh session identifier.
func (r *SessionRegistry) NewID() string {
	return uuid.NewString()
}

// Get returns the chat for id, creating it if absent, and refreshes its
// idle timer. Expired sessions are swept opportunistically.
func (r *SessionRegistry) Get(id string) *SupportChat {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	entry, ok := r.sessions[id]
	if !ok {
		entry = &sessionEntry{chat: NewSupportChat(r.completer)}
		r.sessions[id] = entry
	}
	entry.lastSeen = now
	return entry.chat
}

// Drop discards the session and its transcript.
func (r *SessionRegistry) Drop(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) sweepLocked(now time.Time) {
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
