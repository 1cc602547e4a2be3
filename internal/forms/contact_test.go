package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCapturesAndResets(t *testing.T) {
	f := NewContactForm()
	f.SetField("name", "A")
	f.SetField("email", "a@b.com")
	f.SetField("subject", "S")
	f.SetField("message", "M")

	record := f.Submit()

	assert.True(t, f.Submitted())
	assert.Equal(t, map[string]string{
		"name": "A", "email": "a@b.com", "subject": "S", "message": "M",
	}, record)

	for _, name := range ContactFields {
		assert.Equal(t, "", f.Field(name), "field %s should be reset", name)
	}
	assert.Equal(t, record, f.LastSubmission())
}

func TestConfirmationAutoReverts(t *testing.T) {
	f := NewContactForm()
	f.resetDelay = 20 * time.Millisecond

	f.SetField("name", "A")
	f.Submit()
	require.True(t, f.Submitted())

	assert.Eventually(t, func() bool { return !f.Submitted() }, time.Second, 5*time.Millisecond)
}

func TestDismissRevertsImmediately(t *testing.T) {
	f := NewContactForm()

	f.SetField("name", "A")
	f.Submit()
	require.True(t, f.Submitted())

	f.Dismiss()
	assert.False(t, f.Submitted())
}

func TestDismissCancelsPendingRevert(t *testing.T) {
	f := NewContactForm()
	f.resetDelay = 30 * time.Millisecond

	f.SetField("name", "A")
	f.Submit()
	f.Dismiss()

	// A second submission must not be reverted by the first one's timer.
	f.resetDelay = time.Hour
	f.SetField("name", "B")
	f.Submit()

	time.Sleep(60 * time.Millisecond)
	assert.True(t, f.Submitted())
}
