package generate

import (
	"context"
	"strings"
	"sync/atomic"
)

// cannedReplies are cycled in order by call count when no live backend is
// configured.
var cannedReplies = [...]string{
	"I'm Jarvis, your personal AI assistant! I'm currently running in demo mode. To enable full AI capabilities, configure Ollama or set a Gemini API key.",
	"That's an interesting question! In demo mode I can only provide basic responses. For AI-powered answers, please configure a generation backend.",
	"I understand your query. I'm currently running without a live model, but I'm here to demonstrate the interface!",
	"Great question! This is a demo response. The full AI experience requires Ollama or Gemini to be configured.",
	"I'm processing your request in demo mode. For intelligent AI responses, please complete the provider setup.",
}

// Scripted is the no-provider fallback backend: deterministic canned replies
// cycled by an atomic call counter, with a few keyword-triggered overrides.
type Scripted struct {
	calls atomic.Uint64
}

// NewScripted creates the scripted backend with its counter at zero.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Generate cycles through the canned replies. The counter always advances,
// even when a keyword override replaces the cycled reply.
func (s *Scripted) Generate(_ context.Context, message, _ string) (string, error) {
	n := s.calls.Add(1) - 1
	reply := cannedReplies[n%uint64(len(cannedReplies))]

	if override, ok := overrideFor(message); ok {
		reply = override
	}
	return reply, nil
}

// overrideFor returns a fixed reply for a few recognizable intents.
func overrideFor(message string) (string, bool) {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "who are you") || strings.Contains(m, "what are you"):
		return "I'm Jarvis, your personal AI assistant! I'm a retrieval-augmented chat backend designed to work with local and hosted language models. Currently running in demo mode.", true
	case strings.Contains(m, "help"):
		return "I can help you with various tasks! Right now I'm in demo mode. To unlock full AI capabilities: 1) install Ollama and pull a model, or 2) set GEMINI_API_KEY. Check the documentation for details!", true
	case strings.Contains(m, "how") && strings.Contains(m, "work"):
		return "I use a RAG (Retrieval Augmented Generation) architecture: uploaded documents are chunked and embedded into a vector index, and the most relevant chunks are retrieved to ground every answer from the language model.", true
	case strings.Contains(m, "thank"):
		return "You're welcome! Happy to help!", true
	}
	return "", false
}

// Name identifies the variant.
func (*Scripted) Name() string { return "scripted" }
