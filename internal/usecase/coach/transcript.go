package coach

import (
	"strings"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// TranscriptAccumulator merges incremental speech-to-text fragments into a
// stable text buffer. Final fragments are committed permanently; interim
// fragments are display-only and replaced wholesale on each update. Custom
// words are applied to final fragments only, so a half-recognized reading
// is not rewritten prematurely.
type TranscriptAccumulator struct {
	committed strings.Builder
	interim   string
	words     []entities.CustomWord
}

// NewTranscriptAccumulator creates an accumulator with the given custom
// word registry
func NewTranscriptAccumulator(words []entities.CustomWord) *TranscriptAccumulator {
	return &TranscriptAccumulator{words: words}
}

// CommitFinal appends a finalized recognition fragment, with custom word
// substitution applied
func (ta *TranscriptAccumulator) CommitFinal(fragment string) {
	ta.committed.WriteString(ApplyCustomWords(fragment, ta.words))
	ta.interim = ""
}

// SetInterim replaces the current interim fragment
func (ta *TranscriptAccumulator) SetInterim(fragment string) {
	ta.interim = fragment
}

// Text returns the committed text followed by the current interim fragment
func (ta *TranscriptAccumulator) Text() string {
	return ta.committed.String() + ta.interim
}

// Reset clears the buffer for the next utterance
func (ta *TranscriptAccumulator) Reset() {
	ta.committed.Reset()
	ta.interim = ""
}

// ApplyCustomWords replaces every registered reading with its canonical
// word. Readings are applied in registration order; later entries see the
// result of earlier replacements.
func ApplyCustomWords(text string, words []entities.CustomWord) string {
	result := text
	for _, w := range words {
		if w.Reading == "" {
			continue
		}
		result = strings.ReplaceAll(result, w.Reading, w.Word)
	}
	return result
}
