package spellcheck

// Error describes one misspelled word within a checked text. StartPos and
// EndPos are byte offsets into the original text such that
// text[StartPos:EndPos] == Word.
type Error struct {
	Word        string   `json:"word"`
	StartPos    int      `json:"start_pos"`
	EndPos      int      `json:"end_pos"`
	Suggestions []string `json:"suggestions"`
	Confidence  string   `json:"confidence,omitempty"`
}

// Result is the outcome of checking a single piece of text with one
// engine. Results are immutable once returned by a provider.
type Result struct {
	OriginalText  string         `json:"original_text"`
	Errors        []Error        `json:"errors"`
	CorrectedText string         `json:"corrected_text,omitempty"`
	Language      string         `json:"language"`
	Engine        string         `json:"engine"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// HasErrors reports whether any spelling errors were found.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorCount returns the number of spelling errors found.
func (r Result) ErrorCount() int {
	return len(r.Errors)
}

// EmptyResult returns a zero-error result for the given text. Providers
// return it for blank input and on internal failures (fail-open).
func EmptyResult(text, language, engine string) Result {
	return Result{
		OriginalText: text,
		Errors:       []Error{},
		Language:     language,
		Engine:       engine,
	}
}

// MaxSuggestions caps the suggestion list reported per error.
const MaxSuggestions = 15
