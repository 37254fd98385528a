package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedCyclesReplies(t *testing.T) {
	s := NewScripted()
	ctx := context.Background()

	// The first five calls walk the canned replies in order.
	for i := range cannedReplies {
		reply, err := s.Generate(ctx, "tell me something", "")
		require.NoError(t, err)
		assert.Equal(t, cannedReplies[i], reply, "call %d", i+1)
	}

	// The sixth call wraps back to the first reply.
	reply, err := s.Generate(ctx, "tell me something", "")
	require.NoError(t, err)
	assert.Equal(t, cannedReplies[0], reply)
}

func TestScriptedOverrides(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"identity question", "Who are you exactly?", "personal AI assistant"},
		{"identity variant", "so WHAT ARE YOU?", "personal AI assistant"},
		{"help request", "I need some help please", "demo mode"},
		{"how it works", "how does this thing work?", "Retrieval Augmented Generation"},
		{"gratitude", "thanks, thank you so much", "You're welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScripted()
			reply, err := s.Generate(context.Background(), tt.message, "")
			require.NoError(t, err)
			assert.Contains(t, reply, tt.contains)
		})
	}
}

func TestScriptedOverrideAdvancesCounter(t *testing.T) {
	s := NewScripted()
	ctx := context.Background()

	// An override consumes a cycle position: the next plain call gets the
	// second canned reply, not the first.
	_, err := s.Generate(ctx, "who are you", "")
	require.NoError(t, err)

	reply, err := s.Generate(ctx, "tell me something", "")
	require.NoError(t, err)
	assert.Equal(t, cannedReplies[1], reply)
}

func TestScriptedIgnoresContext(t *testing.T) {
	s := NewScripted()
	reply, err := s.Generate(context.Background(), "hello", "Context: some retrieved text")
	require.NoError(t, err)
	assert.Equal(t, cannedReplies[0], reply)
}

func TestScriptedName(t *testing.T) {
	assert.Equal(t, "scripted", NewScripted().Name())
}
