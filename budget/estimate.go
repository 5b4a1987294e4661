package budget

import (
	"math"
	"unicode/utf8"

	"github.com/blinkchat/assist/core"
)

// English text averages ~4 chars/token, JSON and code closer to 3.5.
const charsPerToken = 3.8

// Every chat turn carries a few tokens of overhead (role, delimiters),
// and tool-call metadata adds a larger fixed chunk.
const (
	turnOverheadTokens     = 4
	toolCallOverheadTokens = 50
)

// Estimate returns the approximate token count of a raw string. Heuristic,
// not exact, but accurate enough for context window management.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len(text)) / charsPerToken))
}

// EstimateTurn returns the approximate token cost of a single turn
// including per-message overhead and tool-call metadata.
func EstimateTurn(t core.Turn) int {
	tokens := turnOverheadTokens + Estimate(t.Content)
	if len(t.ToolCalls) > 0 {
		tokens += toolCallOverheadTokens
	}
	return tokens
}

// EstimateTurns sums EstimateTurn over a conversation.
func EstimateTurns(turns []core.Turn) int {
	total := 0
	for _, t := range turns {
		total += EstimateTurn(t)
	}
	return total
}

// Truncate cuts text to fit within a token budget, appending a marker when
// anything was removed. The cut never splits a UTF-8 sequence.
func Truncate(text string, maxTokens int) string {
	maxChars := int(float64(maxTokens) * charsPerToken)
	if len(text) <= maxChars {
		return text
	}
	for maxChars > 0 && !utf8.RuneStart(text[maxChars]) {
		maxChars--
	}
	return text[:maxChars] + "...[truncated]"
}
