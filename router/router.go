// Package router decides whether a message needs tools at all and, when it
// does, which subset of the registry to advertise to the model. Without
// routing, every model call carries the full tool catalog (~1,500 tokens)
// even for messages like "hi" or "thanks".
//
// Conversational detection is three-layered, evaluated in order:
//
//	Layer 1 — anchored regex over greetings, thanks, farewells,
//	          affirmations and common typo/slang variants
//	Layer 2 — short-message heuristic (≤6 words and no intent keywords)
//	Layer 3 — Levenshtein fuzzy match (edit distance ≤2 against known
//	          greeting stems)
//
// All patterns and lookup tables are compiled once at process start and
// shared read-only afterwards.
package router

import (
	"regexp"
	"strings"

	"github.com/blinkchat/assist/tool"
)

// Intent is a coarse category used to prune which tools are advertised
// for a given message. A message may match multiple intents.
type Intent int

// Intent categories.
const (
	IntentEmail Intent = iota
	IntentCalendar
	IntentMessaging
	IntentSearch
	IntentIntelligence
	IntentFile
)

// intentOrder fixes the evaluation and union order of intents so routing
// output is deterministic.
var intentOrder = [...]Intent{
	IntentEmail,
	IntentCalendar,
	IntentMessaging,
	IntentSearch,
	IntentIntelligence,
	IntentFile,
}

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentEmail:
		return "EMAIL"
	case IntentCalendar:
		return "CALENDAR"
	case IntentMessaging:
		return "MESSAGING"
	case IntentSearch:
		return "SEARCH"
	case IntentIntelligence:
		return "INTELLIGENCE"
	case IntentFile:
		return "FILE"
	default:
		return "UNKNOWN"
	}
}

// Intent keyword patterns, one per category, non-exclusive.
var intentPatterns = map[Intent]*regexp.Regexp{
	IntentEmail: regexp.MustCompile(
		`(?i)\b(e-?mail|mail|inbox|gmail|compose|draft|reply.*mail|send.*mail|forward|yesterday|today|tomorrow|last|latest|recent)\b`),
	IntentCalendar: regexp.MustCompile(
		`(?i)\b(calendar|event|schedule|meeting|appointment|remind|busy|free|slot|reschedule|update.*event|modify.*event|change.*time|move.*meeting|yesterday|today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday|next|week|month)\b`),
	IntentMessaging: regexp.MustCompile(
		`(?i)\b(message|send.*to|chat.*with|conversation|tell\s+(him|her|them)|dm|ping)\b`),
	IntentSearch: regexp.MustCompile(
		`(?i)\b(search|find|look.*up|who\s+is|google|web|latest|news|instagram|twitter|linkedin)\b`),
	IntentIntelligence: regexp.MustCompile(
		`(?i)\b(summarize|summary|tasks?|extract|analyze|overview|recap)\b`),
	IntentFile: regexp.MustCompile(
		`(?i)\b(save|file|download|export|write.*to|note)\b`),
}

// Intent to tool-name mapping. Slices keep a fixed advertisement order.
var intentTools = map[Intent][]string{
	IntentEmail:    {"send_email", "reply_email", "read_emails"},
	IntentCalendar: {"add_to_calendar", "read_calendar_events", "update_calendar_event", "delete_calendar_event"},
	IntentMessaging: {
		"send_message", "get_or_create_conversation",
		"view_conversation", "list_conversations", "search_user",
	},
	IntentSearch:       {"web_search", "search_user"},
	IntentIntelligence: {"summarize_conversation", "extract_tasks", "view_conversation"},
	IntentFile:         {"save_file"},
}

// Layer 1 — expanded conversational regex. Covers greetings, thanks,
// farewells, affirmations, common abbreviations and typical chat
// slang/misspellings. Anchored: the whole message must match.
var conversationalPattern = regexp.MustCompile(
	`(?i)^\s*(` +
		// Compound: misspelled greeting + conversational tail
		`(h[eai]llo[w]?|hii+|hey+|hi+|hlow|hlw|helo|heloo+|yo+|howdy|hola)` +
		`\s+(how\s+(are|r)\s+(you|u|ya)|there|buddy|bro|dude|friend|everyone|all|guys|man)` +
		`(\s+.{0,20})?|` +
		// Standalone greetings and typos
		`h[eai]llo[w]?|hii+|hey+|hi+|hola|yo+|sup|wh?at'?s\s*up|howdy|hlow|hlw|hlew|heloo+|helo|` +
		// How are you variants
		`how\s+(are|r)\s+(you|u|ya)|how'?s\s+it\s+going|hw\s*r\s*u|hru|how\s*dy|` +
		// Good morning/night/evening
		`g(oo)?d\s*(morning|mrng|night|nite|evening|evng|afternoon)|gm|gn|ge|gdm|` +
		// Thanks variants
		`thanks?|thank\s*(you|u|yu)|thnx|thx|thn?ks|ty|tysm|` +
		// OK variants
		`ok(ay|ie|k)?|k+|alright|aight|ight|roger|copy|got\s*it|noted|understood|` +
		// Bye variants
		`bye+|b+ye|bb|see\s*(you|ya|u)|cya|tc|take\s*care|later|gotta\s*go|ttyl|` +
		// Affirmations / negations
		`yes|yep|yea+h?|ya+h?|yup|yass|sure|nope|nah+|no+|nay|` +
		// Laughter / reactions
		`ha(ha)+|he(he)+|lol|lmao|rofl|xd|nice|cool|great|awesome|wow|omg|` +
		// Filler / single-word acknowledgments
		`hmm+|hm+|ah+|oh+|ooh+|umm+|mhm+|uh\s*huh|` +
		// Help / capabilities
		`what\s+can\s+you\s+do|help|features` +
		`)\s*[!?.,\s]*$`)

// Max word count for the short-message heuristic (Layer 2).
const shortMessageMaxWords = 6

// Known greeting stems for Levenshtein matching (Layer 3).
var greetingStems = []string{
	"hello", "hey", "hi", "thanks", "thank", "bye", "okay",
	"good", "morning", "evening", "night", "cool", "nice",
	"great", "awesome", "sup", "howdy", "hola", "yes", "no",
	"sure", "nope", "yeah", "lol",
}

// Max edit distance allowed for a fuzzy greeting match.
const maxEditDistance = 2

var nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z]`)

// DetectIntents tests the message against every intent pattern and returns
// the set of matches. Categories are non-exclusive.
func DetectIntents(message string) map[Intent]bool {
	detected := make(map[Intent]bool)
	if strings.TrimSpace(message) == "" {
		return detected
	}
	for _, intent := range intentOrder {
		if intentPatterns[intent].MatchString(message) {
			detected[intent] = true
		}
	}
	return detected
}

// IsConversational reports whether the message is small talk that needs no
// tools at all, using the three-layer check described in the package doc.
func IsConversational(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}

	// Layer 1: expanded regex (fast path for known patterns)
	if conversationalPattern.MatchString(trimmed) {
		return true
	}

	// Layer 2 + 3: short message + no intent + fuzzy greeting check
	words := strings.Fields(trimmed)
	if len(words) <= shortMessageMaxWords && len(DetectIntents(trimmed)) == 0 {
		firstWord := strings.ToLower(nonAlphaPattern.ReplaceAllString(words[0], ""))
		if firstWord != "" && matchesGreetingStem(firstWord) {
			return true
		}
		// Very short single words with no intent are almost always casual
		// acknowledgments.
		if len(words) <= 1 {
			return true
		}
	}

	return false
}

// Route returns only the tools relevant to the user's message.
//
// Conversational messages get no tools at all. When no intent matches, the
// full registry is returned: guessing wrong and hiding a needed tool is
// worse than a larger prompt. Otherwise the union of every matched
// intent's tool set is returned, deduplicated and order-preserving, with
// search_user injected for MESSAGING and INTELLIGENCE since both
// frequently need user-identity resolution. Mapped names missing from the
// registry are silently dropped.
func Route(message string, registry *tool.Registry) []tool.Tool {
	if IsConversational(message) {
		return nil
	}

	intents := DetectIntents(message)
	if len(intents) == 0 {
		return registry.All()
	}

	seen := make(map[string]bool)
	var names []string
	addName := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, intent := range intentOrder {
		if !intents[intent] {
			continue
		}
		for _, name := range intentTools[intent] {
			addName(name)
		}
	}

	// search_user is cheap and often needed for context resolution.
	if intents[IntentMessaging] || intents[IntentIntelligence] {
		addName("search_user")
	}

	routed := make([]tool.Tool, 0, len(names))
	for _, name := range names {
		if t, ok := registry.Get(name); ok {
			routed = append(routed, t)
		}
	}
	return routed
}

func matchesGreetingStem(word string) bool {
	for _, stem := range greetingStems {
		if levenshtein(word, stem) <= maxEditDistance {
			return true
		}
	}
	return false
}

// levenshtein computes the classic dynamic-programming edit distance in
// O(m*n). When the length difference alone already exceeds the threshold
// it returns maxEditDistance+1 without running the full DP. Only used on
// short ASCII words, so byte indexing is fine.
func levenshtein(a, b string) int {
	m, n := len(a), len(b)
	diff := m - n
	if diff < 0 {
		diff = -diff
	}
	if diff > maxEditDistance {
		return maxEditDistance + 1
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
