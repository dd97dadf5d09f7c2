package analyze

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// estimateEncoding is the BPE used for token estimation. Groq's llama models
// use their own tokenizer, so this is an estimate either way; cl100k_base is
// close enough to enforce a budget.
const estimateEncoding = "cl100k_base"

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// estimateTokens returns an approximate token count for text. It uses
// cl100k_base when the encoding is available and falls back to a
// four-bytes-per-token heuristic when it cannot be loaded (tiktoken fetches
// encoding data on first use, which can fail offline).
func estimateTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(estimateEncoding)
		if err == nil {
			encoding = enc
		}
	})

	if encoding != nil {
		return len(encoding.Encode(text, nil, nil))
	}

	// Rough heuristic: one token per four bytes, rounded up.
	return (len(text) + 3) / 4
}
