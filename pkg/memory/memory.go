package memory

// Kind tags a durable memory item.
type Kind string

const (
	KindPreference Kind = "preference"
	KindPattern    Kind = "pattern"
	KindFact       Kind = "fact"
)

// Item is the durable unit of extracted memory. IDs are assigned by the
// store and strictly increase in insertion order; items are never mutated.
type Item struct {
	ID      int64  `db:"id"`
	Kind    Kind   `db:"kind"`
	Content string `db:"content"`
}

// ExtractionResult is the normalized output of one extraction call. The
// optional fields report degradations: Error for a failed generation call,
// ParsingError plus RawExtraction for unparseable model output.
// RawExtraction is always set on success for auditability.
type ExtractionResult struct {
	Preferences       []string `json:"preferences"`
	EmotionalPatterns []string `json:"emotional_patterns"`
	Facts             []string `json:"facts"`
	RawExtraction     string   `json:"raw_extraction,omitempty"`
	ParsingError      string   `json:"parsing_error,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// RetrievalResult is an ordered, bounded set of memory contents. Degraded
// names the fallback that produced the result ("" means the primary path);
// only Items crosses the HTTP boundary.
type RetrievalResult struct {
	Items    []string
	Degraded string
}

func emptyResult() ExtractionResult {
	return ExtractionResult{
		Preferences:       []string{},
		EmotionalPatterns: []string{},
		Facts:             []string{},
	}
}
