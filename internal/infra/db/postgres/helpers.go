package postgres

import (
	"encoding/json"
	"unicode/utf8"
)

const maxTitleLen = 255

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func nullableTitle(title *string) any {
	if title == nil {
		return nil
	}
	s := *title
	if utf8.RuneCountInString(s) > maxTitleLen {
		s = string([]rune(s)[:maxTitleLen])
	}
	return s
}
