package chunker

// charsPerToken is the character-based token heuristic: roughly 4 characters
// per token for English prose. Exact tokenization is not required for
// chunking, only a stable budget.
const charsPerToken = 4

// EstimateTokens gives a rough token count for text.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}
