package analysis

import (
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z]+`)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "it": {}, "this": {}, "that": {},
	"with": {}, "as": {}, "by": {}, "from": {}, "be": {}, "has": {},
	"have": {}, "had": {}, "not": {}, "we": {}, "you": {}, "they": {},
	"he": {}, "she": {}, "them": {}, "his": {}, "her": {}, "their": {},
	"our": {}, "us": {}, "i": {}, "me": {}, "my": {}, "your": {}, "yours": {},
}

// ExtractKeywords returns up to topK of the most frequent ASCII words in text
// that are not stop-words and are longer than two letters. Words with equal
// counts keep the order in which they first appear.
func ExtractKeywords(text string, topK int) []string {
	if topK <= 0 {
		return []string{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(token) <= 2 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// stable sort keeps first-occurrence order among ties
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topK {
		order = order[:topK]
	}
	return order
}
