package budget

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Counter counts tokens in text. The heuristic estimator is the engine's
// default and stays authoritative for budgeting; TiktokenCounter exists
// for exact prompt-size accounting in logs and metrics.
type Counter interface {
	Count(text string) int
}

// HeuristicCounter adapts the package estimator to the Counter interface.
type HeuristicCounter struct{}

// Count implements Counter using the chars-per-token heuristic.
func (HeuristicCounter) Count(text string) int { return Estimate(text) }

// TiktokenCounter counts tokens with the GPT-4 BPE encoding. Claude style
// models tokenize similarly enough for accounting purposes.
type TiktokenCounter struct {
	codec tokenizer.Codec
}

// NewTiktokenCounter builds a counter backed by the GPT-4 encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return nil, fmt.Errorf("create tokenizer codec: %w", err)
	}
	return &TiktokenCounter{codec: codec}, nil
}

// Count implements Counter, falling back to the heuristic on encoder
// errors.
func (c *TiktokenCounter) Count(text string) int {
	count, err := c.codec.Count(text)
	if err != nil {
		return Estimate(text)
	}
	return count
}
