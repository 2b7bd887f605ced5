package analysis

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// first '{' through the last '}'
var braceBlock = regexp.MustCompile(`(?s)\{.*\}`)

var errNotObject = errors.New("response is not a JSON object")

// Normalize turns a raw completion response into an Insight. The whole text is
// tried as JSON first; failing that, the widest brace-delimited block is used.
func Normalize(raw string) (Insight, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		block := braceBlock.FindString(raw)
		if block == "" {
			return Insight{}, &UnparsableResponseError{Raw: raw, Err: err}
		}
		if fields, err = decodeObject(block); err != nil {
			return Insight{}, &UnparsableResponseError{Raw: raw, Err: err}
		}
	}

	return Insight{
		Summary:   stringValue(fields["summary"]),
		Title:     optionalString(fields["title"]),
		Topics:    normalizeTopics(fields["topics"]),
		Sentiment: normalizeSentiment(fields["sentiment"]),
	}, nil
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errNotObject
	}
	// trailing data after the object is a parse failure, same as a strict decoder
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func normalizeTopics(v any) []string {
	topics := make([]string, 0, MaxTopics)
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				topics = append(topics, part)
			}
		}
	case []any:
		for _, item := range t {
			switch it := item.(type) {
			case string:
				topics = append(topics, it)
			case json.Number:
				topics = append(topics, it.String())
			case bool:
				topics = append(topics, strconv.FormatBool(it))
			}
		}
	}

	if len(topics) > MaxTopics {
		topics = topics[:MaxTopics]
	}
	return topics
}

func normalizeSentiment(v any) Sentiment {
	s, ok := v.(string)
	if !ok || s == "" {
		return SentimentNeutral
	}
	return ParseSentiment(s)
}
