package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameChatForSameID(t *testing.T) {
	reg := NewSessionRegistry(&mockCompleter{}, time.Minute)

	id := reg.NewID()
	chat := reg.Get(id)
	require.True(t, chat.Submit(context.Background(), "hello"))

	again := reg.Get(id)
	assert.Len(t, again.Transcript(), 2)

	other := reg.Get(reg.NewID())
	assert.Empty(t, other.Transcript())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryDropClearsTranscript(t *testing.T) {
	reg := NewSessionRegistry(&mockCompleter{}, time.Minute)

	id := reg.NewID()
	reg.Get(id).Submit(context.Background(), "hello")
	reg.Drop(id)

	assert.Empty(t, reg.Get(id).Transcript())
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	reg := NewSessionRegistry(&mockCompleter{}, time.Minute)

	base := time.Now()
	reg.now = func() time.Time { return base }

	stale := reg.NewID()
	reg.Get(stale)

	reg.now = func() time.Time { return base.Add(2 * time.Minute) }

	fresh := reg.NewID()
	reg.Get(fresh)

	assert.Equal(t, 1, reg.Len())
}
