// Package generate wraps opaque text-generation services behind a single
// capability interface.
//
// Live backends (Ollama, Gemini) convert call failures into human-readable
// diagnostic strings instead of errors: the caller displays the remediation
// hint in place of an answer. A non-nil error from Generate means something
// genuinely exceptional.
package generate

import "context"

// Generator produces a reply for a user message, optionally conditioned on
// assembled retrieval context.
//
// Implementations must be safe for concurrent use.
type Generator interface {
	// Generate returns the reply text. fullContext is the assembled
	// context/history block from the prompt assembler; it equals message
	// when no grounding was available.
	Generate(ctx context.Context, message, fullContext string) (string, error)

	// Name identifies the variant ("ollama", "gemini", "scripted").
	Name() string
}

// buildPrompt composes the final single-turn prompt. With grounding context
// the format is fixed for response parity with the reference pipeline; with
// none, the raw message goes through unmodified.
func buildPrompt(message, fullContext string) string {
	if fullContext == "" || fullContext == message {
		return message
	}
	return fullContext + "\n\nUser: " + message + "\nAssistant:"
}
