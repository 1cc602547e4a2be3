package core

import (
	"context"
	"log"
	"strings"
	"sync"
)

// FallbackReply is appended as a synthetic assistant turn whenever the
// chat exchange fails for any reason. The failure itself is swallowed.
const FallbackReply = "Sorry, I encountered an error. Please check your API key and try again."

// SupportChat accumulates one conversation transcript and exchanges it
// with the chat-completion collaborator on each user turn. Turns are
// strictly ordered user-then-assistant; a submission while a request is in
// flight is ignored rather than queued.
type SupportChat struct {
	completer Completer

	mu         sync.Mutex
	transcript []Turn
	waiting    bool
	apiKey     string
}

func NewSupportChat(completer Completer) *SupportChat {
	return &SupportChat{completer: completer}
}

// SetCredential stores the user-supplied bearer credential for subsequent
// submissions. It is held in memory only and never persisted.
func (s *SupportChat) SetCredential(apiKey string) {
	s.mu.Lock()
	s.apiKey = apiKey
	s.mu.Unlock()
}

// Transcript returns a copy of the accumulated turns.
func (s *SupportChat) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Waiting reports whether a submission is in flight.
func (s *SupportChat) Waiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting
}

// Submit appends text as a user turn and exchanges the full transcript
// with the collaborator. Empty (after trimming) input is a silent no-op,
// and a submission while waiting is ignored; both return false. On any
// failure the transcript gains the fixed fallback assistant turn and the
// error is swallowed. The waiting flag is cleared on every path.
func (s *SupportChat) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.waiting {
		s.mu.Unlock()
		return false
	}
	s.transcript = append(s.transcript, Turn{Role: RoleUser, Content: text})
	s.waiting = true
	snapshot := make([]Turn, len(s.transcript))
	copy(snapshot, s.transcript)
	apiKey := s.apiKey
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.waiting = false
		s.mu.Unlock()
	}()

	reply, err := s.completer.Complete(ctx, apiKey, snapshot)
	if err != nil {
		log.Printf("Support chat exchange failed: %v", err)
		reply = Turn{Role: RoleAssistant, Content: FallbackReply}
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, reply)
	s.mu.Unlock()
	return true
}
