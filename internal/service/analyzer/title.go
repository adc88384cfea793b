package analyzer

import (
	"strings"
	"unicode"
)

// powerWords are recognized engaging title openers
var powerWords = []string{"ultimate", "complete", "essential", "proven", "best", "top", "how to", "guide"}

// TitleAnalysis describes how well a title is optimized for search
type TitleAnalysis struct {
	Length      int      `json:"length"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	HasKeyword  bool     `json:"has_keyword"`
}

// AnalyzeTitle scores a title starting from 100 and deducting for each
// issue found. A missing title scores 0.
func AnalyzeTitle(title string, keywords []string) TitleAnalysis {
	if title == "" {
		return TitleAnalysis{
			Length:      0,
			Score:       0,
			Issues:      []string{"Title is missing"},
			Suggestions: []string{"Add a descriptive title"},
		}
	}

	analysis := TitleAnalysis{
		Length:      len(title),
		Score:       100,
		Issues:      []string{},
		Suggestions: []string{},
	}

	// Optimal length is 50-60 characters
	if analysis.Length < 30 {
		analysis.Issues = append(analysis.Issues, "Title is too short")
		analysis.Suggestions = append(analysis.Suggestions, "Expand title to 50-60 characters")
		analysis.Score -= 20
	} else if analysis.Length > 60 {
		analysis.Issues = append(analysis.Issues, "Title may be truncated in search results")
		analysis.Suggestions = append(analysis.Suggestions, "Shorten title to under 60 characters")
		analysis.Score -= 10
	}

	titleLower := strings.ToLower(title)

	if len(keywords) > 0 {
		for _, kw := range keywords {
			if strings.Contains(titleLower, strings.ToLower(kw)) {
				analysis.HasKeyword = true
				break
			}
		}
		if !analysis.HasKeyword {
			analysis.Issues = append(analysis.Issues, "Primary keyword not found in title")
			analysis.Suggestions = append(analysis.Suggestions, "Include your primary keyword in the title")
			analysis.Score -= 25
		}
	}

	// Titles opening with a number or a power word tend to perform better;
	// this is a suggestion only and does not affect the score.
	startsWithNumber := len(title) > 0 && unicode.IsDigit(rune(title[0]))
	hasPowerWord := false
	for _, word := range powerWords {
		if strings.Contains(titleLower, word) {
			hasPowerWord = true
			break
		}
	}
	if !startsWithNumber && !hasPowerWord {
		analysis.Suggestions = append(analysis.Suggestions, "Consider starting with a number or adding a power word")
	}

	return analysis
}
