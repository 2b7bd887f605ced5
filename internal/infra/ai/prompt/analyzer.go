package prompt

const systemPrompt = "You are a helpful assistant. Summarize the text in 1-2 sentences, " +
	"then extract: title (if present), 3 key topics, and sentiment (positive/neutral/negative). " +
	"Respond strictly as JSON with keys: summary, title, topics, sentiment."

// GetSystemPrompt returns the fixed instruction sent ahead of every text.
func GetSystemPrompt() string {
	return systemPrompt
}

// GetUserPrompt wraps the submitted text as the user message.
func GetUserPrompt(text string) string {
	return "Text:\n" + text + "\n"
}
