// Package summary builds extractive summaries by scoring sentences with word frequencies.
package summary

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/umputun/bytenews/pkg/domain"
)

// Length is a named summary size
type Length string

// supported summary lengths
const (
	Short  Length = "short"
	Medium Length = "medium"
	Long   Length = "long"
)

// ParseLength maps a name to Length, unknown names give Medium
func ParseLength(s string) Length {
	switch Length(strings.ToLower(strings.TrimSpace(s))) {
	case Short:
		return Short
	case Long:
		return Long
	default:
		return Medium
	}
}

// Sentences returns the number of sentences for the length
func (l Length) Sentences() int {
	switch l {
	case Short:
		return 2
	case Long:
		return 5
	default:
		return 3
	}
}

const (
	titleBonus  = 0.5
	firstBonus  = 1.0
	secondBonus = 0.5
)

var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

// Summarizer picks the highest scoring sentences of a text
type Summarizer struct {
	stopWords map[string]struct{}
}

// New makes a summarizer with the english stop-word list
func New() *Summarizer {
	sw := make(map[string]struct{}, len(englishStopWords))
	for _, w := range englishStopWords {
		sw[w] = struct{}{}
	}
	return &Summarizer{stopWords: sw}
}

// SummarizeLength is Summarize with the sentence count taken from a named length
func (s *Summarizer) SummarizeLength(text, title string, l Length) string {
	return s.Summarize(text, title, l.Sentences())
}

// Summarize returns n sentences of the text with the highest word-frequency scores, in their
// original order. Text with n or fewer sentences is returned as is, blank text gives
// domain.NoSummaryInput. The result depends only on the inputs.
func (s *Summarizer) Summarize(text, title string, n int) string {
	if strings.TrimSpace(text) == "" {
		return domain.NoSummaryInput
	}
	if n <= 0 {
		n = Medium.Sentences()
	}

	sentences := splitSentences(text)
	if len(sentences) <= n {
		return text
	}

	freq := map[string]float64{}
	for _, w := range s.tokens(text) {
		freq[w]++
	}
	// title words get the bonus once, repeats in the title don't add up
	titleWords := map[string]struct{}{}
	for _, w := range s.tokens(title) {
		titleWords[w] = struct{}{}
	}
	for w := range titleWords {
		if _, ok := freq[w]; ok {
			freq[w] += titleBonus
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sent := range sentences {
		sc := 0.0
		for _, w := range s.tokens(sent) {
			sc += freq[w]
		}
		switch i {
		case 0:
			sc += firstBonus
		case 1:
			sc += secondBonus
		}
		scores[i] = scored{idx: i, score: sc}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	top := scores[:n]
	sort.Slice(top, func(i, j int) bool { return top[i].idx < top[j].idx })

	res := make([]string, 0, n)
	for _, t := range top {
		res = append(res, sentences[t.idx])
	}
	return strings.Join(res, " ")
}

// tokens returns lower-cased alphanumeric words without stop-words
func (s *Summarizer) tokens(text string) []string {
	fields := strings.Fields(text)
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.ToLower(strings.TrimFunc(f, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }))
		if w == "" || !isAlphanumeric(w) {
			continue
		}
		if _, stop := s.stopWords[w]; stop {
			continue
		}
		res = append(res, w)
	}
	return res
}

func isAlphanumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// splitSentences breaks text on . ! ? followed by whitespace or the end of text
func splitSentences(text string) []string {
	var res []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if sent := strings.TrimSpace(text[start:loc[1]]); sent != "" {
			res = append(res, sent)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		res = append(res, tail)
	}
	return res
}
