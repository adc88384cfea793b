package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	alphaWordRe     = regexp.MustCompile(`\b[a-z]+\b`)
	silentSuffixRe  = regexp.MustCompile(`([^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingYRe      = regexp.MustCompile(`^y`)
	syllableGroupRe = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// ReadabilityResult is a simplified Flesch Reading Ease score with a
// human-readable grade level
type ReadabilityResult struct {
	Score               int    `json:"score"`
	Level               string `json:"level"`
	AvgSentenceLength   string `json:"avg_sentence_length"`
	AvgSyllablesPerWord string `json:"avg_syllables_per_word"`
}

// Readability computes 206.835 - 1.015*(words/sentences) -
// 84.6*(syllables/words), clamped to [0,100]. Empty text scores 0.
func Readability(text string) ReadabilityResult {
	if text == "" {
		return ReadabilityResult{}
	}

	words := WordCount(text)
	sentences := SentenceCount(text)
	if words == 0 || sentences == 0 {
		return ReadabilityResult{}
	}

	syllables := countSyllables(text)
	avgSentenceLength := float64(words) / float64(sentences)
	avgSyllablesPerWord := float64(syllables) / float64(words)

	score := 206.835 - (1.015 * avgSentenceLength) - (84.6 * avgSyllablesPerWord)
	score = math.Max(0, math.Min(100, score))

	rounded := int(math.Round(score))
	return ReadabilityResult{
		Score:               rounded,
		Level:               readabilityLevel(rounded),
		AvgSentenceLength:   fmt.Sprintf("%.1f", avgSentenceLength),
		AvgSyllablesPerWord: fmt.Sprintf("%.2f", avgSyllablesPerWord),
	}
}

// countSyllables estimates syllables across the text. Lowercase alphabetic
// tokens only; trailing silent-e patterns and a leading y are stripped, then
// vowel groups of one or two letters count as syllables, minimum one per
// word.
func countSyllables(text string) int {
	words := alphaWordRe.FindAllString(strings.ToLower(text), -1)
	count := 0
	for _, word := range words {
		word = silentSuffixRe.ReplaceAllString(word, "")
		word = leadingYRe.ReplaceAllString(word, "")
		groups := syllableGroupRe.FindAllString(word, -1)
		if len(groups) == 0 {
			count++
			continue
		}
		count += len(groups)
	}
	return count
}

// readabilityLevel maps a Flesch score to a grade-level label
func readabilityLevel(score int) string {
	switch {
	case score >= 90:
		return "Very Easy (5th grade)"
	case score >= 80:
		return "Easy (6th grade)"
	case score >= 70:
		return "Fairly Easy (7th grade)"
	case score >= 60:
		return "Standard (8th-9th grade)"
	case score >= 50:
		return "Fairly Difficult (10th-12th grade)"
	case score >= 30:
		return "Difficult (College)"
	default:
		return "Very Difficult (College Graduate)"
	}
}
