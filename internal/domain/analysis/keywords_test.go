package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/llm-extracter/internal/domain/analysis"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		topK int
		want []string
	}{
		{name: "empty", text: "", topK: 3, want: []string{}},
		{name: "ties keep first occurrence", text: "The cat sat on the mat. The cat ran.", topK: 3, want: []string{"cat", "sat", "mat"}},
		{name: "case folded", text: "Golang GOLANG golang rust Rust", topK: 2, want: []string{"golang", "rust"}},
		{name: "digits and punctuation separate", text: "abc123def, abc!", topK: 3, want: []string{"abc", "def"}},
		{name: "non latin produces nothing", text: "поездка море 東京", topK: 3, want: []string{}},
		{name: "short tokens dropped", text: "go go go is ok yes", topK: 3, want: []string{"yes"}},
		{name: "only stopwords", text: "this that their yours", topK: 3, want: []string{}},
		{name: "zero topK", text: "plenty of words here", topK: 0, want: []string{}},
		{name: "negative topK", text: "plenty of words here", topK: -1, want: []string{}},
		{name: "fewer than topK", text: "alpha beta", topK: 5, want: []string{"alpha", "beta"}},
		{name: "higher count wins over order", text: "one two two three three three", topK: 3, want: []string{"three", "two", "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analysis.ExtractKeywords(tt.text, tt.topK)
			require.NotNil(t, got)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractKeywordsInvariants(t *testing.T) {
	inputs := []string{
		"The quick brown fox jumps over the lazy dog and the dog sleeps.",
		"I me my your yours we us our they them he she his her",
		"Numbers 1234 and symbols #$%^ are separators, a b c dd eee",
		strings.Repeat("repeat ", 50) + "unique",
	}
	stop := []string{"the", "and", "your", "yours", "they", "them", "her", "his", "our", "she"}

	for _, in := range inputs {
		for topK := 0; topK <= 5; topK++ {
			got := analysis.ExtractKeywords(in, topK)
			require.LessOrEqual(t, len(got), topK)
			for _, kw := range got {
				require.GreaterOrEqual(t, len(kw), 3, kw)
				require.Equal(t, strings.ToLower(kw), kw)
				require.NotContains(t, stop, kw)
			}
		}
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	text := "delta alpha charlie bravo alpha charlie delta echo"
	first := analysis.ExtractKeywords(text, 4)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, analysis.ExtractKeywords(text, 4))
	}
	require.Equal(t, []string{"delta", "alpha", "charlie", "bravo"}, first)
}
