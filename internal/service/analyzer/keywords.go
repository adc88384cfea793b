package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
)

// KeywordMatch describes one target keyword found in the content
type KeywordMatch struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
	Density string `json:"density"` // percent, 2 decimals
}

// KeywordAnalysis summarizes target keyword usage across the content
type KeywordAnalysis struct {
	Found            []KeywordMatch `json:"found"`
	Missing          []string       `json:"missing"`
	TotalOccurrences int            `json:"total_occurrences"`
	Density          string         `json:"density"` // aggregate percent, 2 decimals
}

// DensityValue returns the aggregate density as a number
func (a KeywordAnalysis) DensityValue() float64 {
	v, _ := strconv.ParseFloat(a.Density, 64)
	return v
}

// AnalyzeKeywords counts case-insensitive occurrences of each target keyword
// in the content. Keywords are matched as literal substrings; user-supplied
// text is escaped before being compiled into a pattern.
func AnalyzeKeywords(content string, keywords []string) KeywordAnalysis {
	analysis := KeywordAnalysis{
		Found:   []KeywordMatch{},
		Missing: []string{},
		Density: "0.00",
	}

	if content == "" || len(keywords) == 0 {
		analysis.Missing = append(analysis.Missing, keywords...)
		return analysis
	}

	wordCount := WordCount(content)

	for _, keyword := range keywords {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(keyword))
		if err != nil {
			analysis.Missing = append(analysis.Missing, keyword)
			continue
		}

		count := len(re.FindAllStringIndex(content, -1))
		if count == 0 {
			analysis.Missing = append(analysis.Missing, keyword)
			continue
		}

		density := 0.0
		if wordCount > 0 {
			density = float64(count) / float64(wordCount) * 100
		}
		analysis.Found = append(analysis.Found, KeywordMatch{
			Keyword: keyword,
			Count:   count,
			Density: fmt.Sprintf("%.2f", density),
		})
		analysis.TotalOccurrences += count
	}

	if wordCount > 0 {
		analysis.Density = fmt.Sprintf("%.2f", float64(analysis.TotalOccurrences)/float64(wordCount)*100)
	}
	return analysis
}
