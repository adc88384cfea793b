package analyzer

import (
	"fmt"
	"strings"
)

// ChecklistItem is a single pass/fail SEO rule with a human-readable
// current value
type ChecklistItem struct {
	Item    string `json:"item"`
	Passed  bool   `json:"passed"`
	Current string `json:"current"`
}

// Checklist evaluates the standard pass/fail SEO rules for a draft. Each
// check is independent and reproducible from the same inputs.
func Checklist(title, content, metaDescription string, keywords []string) []ChecklistItem {
	checklist := []ChecklistItem{}
	wordCount := WordCount(content)

	titleCurrent := "No title"
	if title != "" {
		titleCurrent = fmt.Sprintf("%d characters", len(title))
	}
	checklist = append(checklist, ChecklistItem{
		Item:    "Title length (50-60 chars)",
		Passed:  title != "" && len(title) >= 50 && len(title) <= 60,
		Current: titleCurrent,
	})

	keywordInTitle := false
	titleLower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			keywordInTitle = true
			break
		}
	}
	keywordCurrent := "No keywords set"
	if len(keywords) > 0 {
		keywordCurrent = "Check keywords"
	}
	checklist = append(checklist, ChecklistItem{
		Item:    "Keyword in title",
		Passed:  keywordInTitle,
		Current: keywordCurrent,
	})

	metaCurrent := "No meta description"
	if metaDescription != "" {
		metaCurrent = fmt.Sprintf("%d characters", len(metaDescription))
	}
	checklist = append(checklist, ChecklistItem{
		Item:    "Meta description length (150-160 chars)",
		Passed:  metaDescription != "" && len(metaDescription) >= 150 && len(metaDescription) <= 160,
		Current: metaCurrent,
	})

	checklist = append(checklist, ChecklistItem{
		Item:    "Minimum word count (300+ words)",
		Passed:  wordCount >= 300,
		Current: fmt.Sprintf("%d words", wordCount),
	})

	checklist = append(checklist, ChecklistItem{
		Item:    "Optimal word count (1000+ words)",
		Passed:  wordCount >= 1000,
		Current: fmt.Sprintf("%d words", wordCount),
	})

	density := AnalyzeKeywords(content, keywords).DensityValue()
	checklist = append(checklist, ChecklistItem{
		Item:    "Keyword density (1-3%)",
		Passed:  density >= 1 && density <= 3,
		Current: fmt.Sprintf("%.2f%%", density),
	})

	return checklist
}
