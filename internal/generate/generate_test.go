package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		fullContext string
		want        string
	}{
		{
			name:        "no context passes message through",
			message:     "hi",
			fullContext: "",
			want:        "hi",
		},
		{
			name:        "context equal to message means no grounding",
			message:     "hi",
			fullContext: "hi",
			want:        "hi",
		},
		{
			name:        "context wraps message in dialogue scaffold",
			message:     "what is jarvis?",
			fullContext: "Context: Jarvis is a chat backend.",
			want:        "Context: Jarvis is a chat backend.\n\nUser: what is jarvis?\nAssistant:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildPrompt(tt.message, tt.fullContext))
		})
	}
}
