package chunker

import "unicode/utf8"

// Config controls chunking behavior. Budgets are in approximate tokens
// (see EstimateTokens).
type Config struct {
	MaxTokens     int // Target chunk size in tokens.
	OverlapTokens int // Overlap between consecutive chunks in tokens.
}

// DefaultConfig returns the defaults used for gpt-4o analysis calls.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     2500,
		OverlapTokens: 100,
	}
}

// Chunk is a bounded, possibly overlapping slice of a document's text.
// Start and End are byte offsets into the original input.
type Chunk struct {
	Index int    `json:"index"`
	Start int    `json:"start_offset"`
	End   int    `json:"end_offset"`
	Text  string `json:"text"`
}

// boundaryLookback is how far back from the window end Split searches for a
// sentence boundary before giving up and cutting hard.
const boundaryLookback = 500

// Split breaks text into overlapping chunks of at most MaxTokens each,
// preferring sentence-boundary cuts. Each subsequent chunk starts
// OverlapTokens worth of characters before the previous chunk's end, so the
// union of chunk ranges covers the whole input with no gaps. Text under the
// budget comes back as a single chunk.
func Split(text string, cfg Config) []Chunk {
	cfg = normalize(cfg)
	maxChars := cfg.MaxTokens * charsPerToken
	overlapChars := cfg.OverlapTokens * charsPerToken

	if len(text) == 0 {
		return nil
	}
	if len(text) <= maxChars {
		return []Chunk{{Index: 0, Start: 0, End: len(text), Text: text}}
	}

	var chunks []Chunk
	start := 0
	for start < len(text) {
		end := start + maxChars
		if end >= len(text) {
			end = len(text)
		} else {
			end = cutPoint(text, start, end)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Start: start,
			End:   end,
			Text:  text[start:end],
		})
		if end >= len(text) {
			break
		}
		next := end - overlapChars
		for next > 0 && !utf8.RuneStart(text[next]) {
			next--
		}
		if next <= start {
			// Degenerate overlap; step forward to guarantee progress.
			next = start + 1
			for next < len(text) && !utf8.RuneStart(text[next]) {
				next++
			}
		}
		start = next
	}
	return chunks
}

// cutPoint finds the cut for a window ending at limit: the last sentence
// boundary within the lookback window, or a rune-safe hard cut if the text
// has no usable punctuation there.
func cutPoint(text string, start, limit int) int {
	lookback := boundaryLookback
	if limit-start < lookback {
		lookback = limit - start
	}
	for i := limit - 1; i >= limit-lookback; i-- {
		if isSentenceEnd(text, i) {
			return i + 1
		}
	}
	// Hard cut: back up to a rune start so we never split mid-character.
	cut := limit
	for cut > start+1 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}

// isSentenceEnd reports whether position i ends a sentence: terminal
// punctuation followed by whitespace, or a newline on its own.
func isSentenceEnd(text string, i int) bool {
	switch text[i] {
	case '.', '!', '?':
		return i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t')
	case '\n':
		return true
	}
	return false
}

func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.OverlapTokens < 0 {
		cfg.OverlapTokens = def.OverlapTokens
	}
	// Overlap must stay well below the window or chunking cannot advance.
	if cfg.OverlapTokens >= cfg.MaxTokens/2 {
		cfg.OverlapTokens = cfg.MaxTokens / 4
	}
	return cfg
}
