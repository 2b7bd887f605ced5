package analysis

import (
	"strings"
	"time"
)

const (
	// MaxTopics batas jumlah topic per record
	MaxTopics = 3
	// DefaultTopK is the keyword count used when none is configured.
	DefaultTopK = 3
	// SuccessConfidence is stored on every record produced by a successful completion.
	SuccessConfidence = 0.9
)

// Sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment lowercases s and coerces anything outside the enum to neutral.
func ParseSentiment(s string) Sentiment {
	switch v := Sentiment(strings.ToLower(s)); v {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return v
	default:
		return SentimentNeutral
	}
}

// RecordID identity assigned by the store
type RecordID int64

// Record is a persisted analysis. Records are never updated after Save.
type Record struct {
	ID         RecordID  `json:"id"`
	InputText  string    `json:"-"`
	Summary    string    `json:"summary"`
	Title      *string   `json:"title"`
	Topics     []string  `json:"topics"`
	Sentiment  Sentiment `json:"sentiment"`
	Keywords   []string  `json:"keywords"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// Matches reports whether topic equals one of the record's topics or
// keywords, ignoring case.
func (r *Record) Matches(topic string) bool {
	needle := strings.ToLower(topic)
	for _, t := range r.Topics {
		if strings.ToLower(t) == needle {
			return true
		}
	}
	for _, k := range r.Keywords {
		if strings.ToLower(k) == needle {
			return true
		}
	}
	return false
}

// Insight is the normalized part of a completion response.
type Insight struct {
	Summary   string
	Title     *string
	Topics    []string
	Sentiment Sentiment
}
