// Package chat composes retrieval, prompt assembly and generation into the
// per-turn chat pipeline.
package chat

import (
	"strings"
	"unicode"
)

// HistoryWindow bounds how many trailing conversation messages enter the
// prompt. This cap is a hard contract: it bounds prompt growth independent of
// session length and the exact assembled output is relied on by parity tests.
const HistoryWindow = 5

// Message is one caller-supplied conversation turn. History is ephemeral
// caller-owned state; nothing is persisted server-side between requests.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Assemble merges retrieved context and truncated history into the
// generation-ready context block.
//
// Format, in order:
//  1. "Context: {text}" blocks joined by blank lines
//  2. a blank line, "Conversation History:" and the last HistoryWindow
//     messages as "{Role}: {content}" lines (oldest of that window first)
//
// With no retrieved texts and no history the result is exactly the raw
// query, with no blank scaffolding.
func Assemble(query string, retrieved []string, history []Message) string {
	var contextBlock string
	if len(retrieved) > 0 {
		blocks := make([]string, len(retrieved))
		for i, text := range retrieved {
			blocks[i] = "Context: " + text
		}
		contextBlock = strings.Join(blocks, "\n\n")
	}

	recent := history
	if len(recent) > HistoryWindow {
		recent = recent[len(recent)-HistoryWindow:]
	}
	lines := make([]string, len(recent))
	for i, msg := range recent {
		lines[i] = capitalize(msg.Role) + ": " + msg.Content
	}
	historyBlock := strings.Join(lines, "\n")

	if historyBlock != "" {
		return contextBlock + "\n\nConversation History:\n" + historyBlock
	}
	if contextBlock != "" {
		return contextBlock
	}
	return query
}

// capitalize upper-cases the leading rune and lower-cases the rest, so roles
// render as "User"/"Assistant" regardless of the caller's casing.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
