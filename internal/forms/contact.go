// Package forms implements the contact-form glue: field capture, a
// confirmation state with timed auto-reset, and an explicit dismiss.
// Submission is a local state transition only; the form itself performs no
// network or storage I/O.
package forms

import (
	"sync"
	"time"
)

// ConfirmationResetDelay is how long the confirmation view stays up before
// reverting on its own.
const ConfirmationResetDelay = 5 * time.Second

// ContactFields are the field names the contact form carries.
var ContactFields = []string{"name", "email", "subject", "message"}

// ContactForm captures structured field values and transitions to a
// submitted confirmation state that auto-reverts after a fixed delay or
// via Dismiss.
type ContactForm struct {
	mu             sync.Mutex
	fields         map[string]string
	submitted      bool
	lastSubmission map[string]string
	timer          *time.Timer
	resetDelay     time.Duration
}

func NewContactForm() *ContactForm {
	f := &ContactForm{
		fields:     make(map[string]string),
		resetDelay: ConfirmationResetDelay,
	}
	for _, name := range ContactFields {
		f.fields[name] = ""
	}
	return f
}

// SetField records the current value of one field.
func (f *ContactForm) SetField(name, value string) {
	f.mu.Lock()
	f.fields[name] = value
	f.mu.Unlock()
}

// Field reads a field's current value.
func (f *ContactForm) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

// Submit captures the current field values as a flat record, enters the
// confirmation state, resets all fields to empty, and schedules the
// confirmation to revert after the fixed delay. The captured record is
// returned for any caller that wants to hand it off.
func (f *ContactForm) Submit() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := make(map[string]string, len(f.fields))
	for name, value := range f.fields {
		record[name] = value
		f.fields[name] = ""
	}
	f.lastSubmission = record
	f.submitted = true

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.resetDelay, f.Dismiss)

	return record
}

// Submitted reports whether the confirmation view is showing.
func (f *ContactForm) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

// Dismiss reverts the confirmation state immediately.
func (f *ContactForm) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.submitted = false
}

// LastSubmission returns the most recently captured record, or nil.
func (f *ContactForm) LastSubmission() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSubmission
}
