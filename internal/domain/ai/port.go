package ai

import "context"

// Client sends text to a completion provider and returns its raw reply,
// expected to contain a JSON object with summary, title, topics and sentiment.
type Client interface {
	Analyze(ctx context.Context, text string) (string, error)
}
