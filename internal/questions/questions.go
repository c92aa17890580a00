// Package questions derives self-test questions from study notes.
//
// The heuristic is deliberately simple: the most frequent words that look like
// nouns (capitalised, or ending in "s") each become a "significance" question.
package questions

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoFile is returned when no file path was selected.
var ErrNoFile = errors.New("no file selected")

var wordSplitter = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Generate returns up to limit questions for content, most frequent keyword first.
// Ties are broken alphabetically. A limit of zero or less means no limit.
func Generate(content string, limit int) []string {
	counts := make(map[string]int)
	for _, word := range wordSplitter.Split(content, -1) {
		if word == "" || !looksLikeNoun(word) {
			continue
		}
		counts[word]++
	}

	keywords := make([]string, 0, len(counts))
	for word := range counts {
		keywords = append(keywords, word)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}

	questions := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		questions = append(questions, fmt.Sprintf("What is the significance of '%s'?", keyword))
	}
	return questions
}

// FromFile returns a question source that reads path each time it is called.
func FromFile(path string, limit int) func() ([]string, error) {
	return func() ([]string, error) {
		if strings.TrimSpace(path) == "" {
			return nil, ErrNoFile
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read notes file: %w", err)
		}
		return Generate(string(content), limit), nil
	}
}

func looksLikeNoun(word string) bool {
	first, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(first) || strings.HasSuffix(word, "s")
}
