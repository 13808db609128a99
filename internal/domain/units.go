package domain

// Metadata keys attached to text units by the dataset loader.
const (
	MetaSensorID = "sensor_id"
	MetaType     = "type"
	MetaLocation = "location"
	MetaValue    = "value"
	MetaStatus   = "status"
)

// TextUnit is the atomic retrievable document: a free-text summary of one
// sensor configuration or one reading event, plus filterable metadata.
// Units are immutable once created.
type TextUnit struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ScoredUnit pairs a retrieved unit with its similarity score.
type ScoredUnit struct {
	Unit  TextUnit `json:"unit"`
	Score float64  `json:"score"`
}

// QueryResult is the outcome of answering one question: the generated answer
// plus the units it was grounded on, in retrieval-rank order.
type QueryResult struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Sources  []ScoredUnit `json:"sources"`
}
