package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteRequestShape(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []Turn  `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"the answer"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(srv.URL, "deepseek-chat")
	transcript := []Turn{
		{Role: RoleUser, Content: "earlier question"},
		{Role: RoleAssistant, Content: "earlier answer"},
		{Role: RoleUser, Content: "new question"},
	}

	reply, err := p.Complete(context.Background(), "sk-test", transcript)
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "the answer", reply.Content)

	assert.Equal(t, "deepseek-chat", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.001)
	assert.Equal(t, 1000, captured.MaxTokens)
	// The full ordered transcript rides along, ending with the new turn.
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "new question", captured.Messages[2].Content)
}

func TestCompleteMissingChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(srv.URL, "deepseek-chat")
	_, err := p.Complete(context.Background(), "sk-test", []Turn{{Role: RoleUser, Content: "q"}})
	assert.Error(t, err)
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth_error"}}`))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(srv.URL, "deepseek-chat")
	_, err := p.Complete(context.Background(), "bad-key", []Turn{{Role: RoleUser, Content: "q"}})
	assert.Error(t, err)
}
