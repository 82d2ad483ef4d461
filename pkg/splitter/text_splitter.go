package splitter

import (
	"github.com/tmc/langchaingo/textsplitter"
)

// TextSplitter wraps the langchaingo text splitter
type TextSplitter struct {
	splitter textsplitter.TextSplitter
}

// NewRecursiveCharacterTextSplitter creates a new recursive character text splitter
func NewRecursiveCharacterTextSplitter(chunkSize, chunkOverlap int) *TextSplitter {
	ts := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	return &TextSplitter{splitter: ts}
}

// SplitText splits text into chunks
func (ts *TextSplitter) SplitText(text string) ([]string, error) {
	return ts.splitter.SplitText(text)
}

// BoundText caps text at roughly maxChars, splitting on natural boundaries
// and keeping the leading chunk. Oversized scrape dumps are trimmed this way
// before they reach the model's context window.
func BoundText(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}

	ts := NewRecursiveCharacterTextSplitter(maxChars, 0)
	chunks, err := ts.SplitText(text)
	if err != nil || len(chunks) == 0 {
		// Safe truncation using runes to avoid invalid UTF-8
		runes := []rune(text)
		if len(runes) > maxChars {
			return string(runes[:maxChars])
		}
		return text
	}
	return chunks[0]
}
