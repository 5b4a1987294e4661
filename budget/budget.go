// Package budget sizes model responses and estimates token costs for
// context trimming. Tier selection encodes a deliberate cost/quality
// tradeoff with strict precedence: conversational messages always get the
// tightest budget, explicit detail requests always get the largest, and
// tool-calling turns sit in between.
package budget

import (
	"regexp"
	"strings"
)

// Tier is a heuristic ceiling on response length.
type Tier int

// Response tiers, ordered by ceiling.
const (
	// TierConcise covers greetings, acknowledgments and single-line answers.
	TierConcise Tier = iota
	// TierStandard covers normal chat, short Q&A and capability questions.
	TierStandard
	// TierDetailed covers tool-calling responses, summaries and search results.
	TierDetailed
	// TierExtended is used when the user explicitly asked for long output.
	TierExtended
)

// MaxTokens returns the output-token ceiling for the tier.
func (t Tier) MaxTokens() int {
	switch t {
	case TierConcise:
		return 200
	case TierDetailed:
		return 1000
	case TierExtended:
		return 2000
	default:
		return 500
	}
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierConcise:
		return "CONCISE"
	case TierDetailed:
		return "DETAILED"
	case TierExtended:
		return "EXTENDED"
	default:
		return "STANDARD"
	}
}

// Pattern for detecting explicit "give me detail" requests.
var detailRequestPattern = regexp.MustCompile(
	`(?i)\b(detail(ed)?|in\s+detail|explain|elaborate|comprehensive|thorough|` +
		`at\s+least\s+\d+\s+words?|\d+\s+words?|essay|paragraph|long\s+(answer|response)|` +
		`write\s+me\s+a|full\s+(explanation|answer|report))\b`)

// Pattern for simple factual Q&A (yes/no questions, definitions, ...).
var simpleQuestionPattern = regexp.MustCompile(
	`(?i)^(what\s+is|who\s+is|when\s+(is|was|did)|where\s+is|is\s+it|can\s+you|do\s+you|` +
		`tell\s+me\s+(the|a)\s+\w+|define|meaning\s+of)\b`)

// Determine selects the response tier for a message. The precedence order
// is fixed and must not be rearranged: conversational beats everything
// (short acknowledgements never get a large budget even when tools are
// available), an explicit detail request beats tool availability, tool
// availability beats the simple-question default.
func Determine(message string, conversational, hasTools bool) Tier {
	if strings.TrimSpace(message) == "" {
		return TierStandard
	}

	if conversational {
		return TierConcise
	}

	if detailRequestPattern.MatchString(message) {
		return TierExtended
	}

	if hasTools {
		return TierDetailed
	}

	if simpleQuestionPattern.MatchString(message) {
		return TierStandard
	}

	return TierStandard
}

// MaxTokens is a convenience combining Determine with the tier ceiling.
func MaxTokens(message string, conversational, hasTools bool) int {
	return Determine(message, conversational, hasTools).MaxTokens()
}
