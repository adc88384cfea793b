// Package analyzer computes deterministic SEO text metrics for a content
// draft. All functions are pure: same inputs, same outputs, no I/O.
package analyzer

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSplitRe = regexp.MustCompile(`\n{2,}`)
)

// wordsPerMinute is the assumed average reading speed
const wordsPerMinute = 200

// Metrics bundles the basic deterministic metrics for one draft
type Metrics struct {
	WordCount      int               `json:"word_count"`
	CharacterCount int               `json:"character_count"`
	SentenceCount  int               `json:"sentence_count"`
	ParagraphCount int               `json:"paragraph_count"`
	ReadingTime    int               `json:"reading_time"`
	Keywords       KeywordAnalysis   `json:"keyword_analysis"`
	Title          TitleAnalysis     `json:"title_analysis"`
	Readability    ReadabilityResult `json:"readability"`
}

// BasicMetrics computes all deterministic metrics for a draft
func BasicMetrics(title, content string, targetKeywords []string) Metrics {
	return Metrics{
		WordCount:      WordCount(content),
		CharacterCount: len(content),
		SentenceCount:  SentenceCount(content),
		ParagraphCount: ParagraphCount(content),
		ReadingTime:    ReadingTime(content),
		Keywords:       AnalyzeKeywords(content, targetKeywords),
		Title:          AnalyzeTitle(title, targetKeywords),
		Readability:    Readability(content),
	}
}

// WordCount counts non-empty whitespace-separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount splits on runs of sentence terminators and counts non-empty
// segments
func SentenceCount(text string) int {
	if text == "" {
		return 0
	}
	count := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			count++
		}
	}
	return count
}

// ParagraphCount splits on blank-line separators and counts non-empty
// paragraphs
func ParagraphCount(text string) int {
	if text == "" {
		return 0
	}
	count := 0
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

// ReadingTime estimates reading time in minutes at 200 words per minute
func ReadingTime(text string) int {
	return int(math.Ceil(float64(WordCount(text)) / float64(wordsPerMinute)))
}
