package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, WordCount(""))
	assert.Equal(0, WordCount("   \n\t  "))
	assert.Equal(3, WordCount("one two three"))
	assert.Equal(3, WordCount("  one\n two\t\tthree  "))
}

func TestSentenceCount(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, SentenceCount(""))
	assert.Equal(1, SentenceCount("Hello world."))
	assert.Equal(3, SentenceCount("One. Two! Three?"))
	// Runs of terminators count as one boundary
	assert.Equal(2, SentenceCount("Wait... what?!"))
}

func TestParagraphCount(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, ParagraphCount(""))
	assert.Equal(1, ParagraphCount("single paragraph\nwith a line break"))
	assert.Equal(3, ParagraphCount("first\n\nsecond\n\n\nthird"))
}

func TestReadingTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, ReadingTime(""))
	assert.Equal(1, ReadingTime("one"))
	assert.Equal(1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(2, ReadingTime(strings.Repeat("word ", 400)))
}

func TestAnalyzeKeywordsDensity(t *testing.T) {
	assert := assert.New(t)

	// 3 occurrences in exactly 100 words
	content := strings.Repeat("filler ", 97) + "content content content"
	assert.Equal(100, WordCount(content))

	analysis := AnalyzeKeywords(content, []string{"content"})
	assert.Len(analysis.Found, 1)
	assert.Equal("content", analysis.Found[0].Keyword)
	assert.Equal(3, analysis.Found[0].Count)
	assert.Equal("3.00", analysis.Found[0].Density)
	assert.Equal(3, analysis.TotalOccurrences)
	assert.Equal("3.00", analysis.Density)
	assert.InDelta(3.0, analysis.DensityValue(), 0.001)
	assert.Empty(analysis.Missing)
}

func TestAnalyzeKeywordsMissing(t *testing.T) {
	assert := assert.New(t)

	analysis := AnalyzeKeywords("some text about optimization", []string{"ranking", "optimization"})
	assert.Equal([]string{"ranking"}, analysis.Missing)
	assert.Len(analysis.Found, 1)
}

func TestAnalyzeKeywordsCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	analysis := AnalyzeKeywords("SEO basics and more seo tricks", []string{"seo"})
	assert.Len(analysis.Found, 1)
	assert.Equal(2, analysis.Found[0].Count)
}

func TestAnalyzeKeywordsEscapesMetacharacters(t *testing.T) {
	assert := assert.New(t)

	// Keywords with regex metacharacters match literally and never panic
	analysis := AnalyzeKeywords("learn c++ today and (maybe) tomorrow", []string{"c++", "(maybe)"})
	assert.Len(analysis.Found, 2)
	assert.Equal(1, analysis.Found[0].Count)
	assert.Equal(1, analysis.Found[1].Count)
}

func TestAnalyzeKeywordsEmptyInputs(t *testing.T) {
	assert := assert.New(t)

	analysis := AnalyzeKeywords("", []string{"seo"})
	assert.Equal("0.00", analysis.Density)
	assert.Equal([]string{"seo"}, analysis.Missing)
	assert.Empty(analysis.Found)

	analysis = AnalyzeKeywords("some content", nil)
	assert.Equal("0.00", analysis.Density)
	assert.Empty(analysis.Found)
	assert.Empty(analysis.Missing)
}

func TestAnalyzeTitleMissing(t *testing.T) {
	assert := assert.New(t)

	analysis := AnalyzeTitle("", []string{"seo"})
	assert.Equal(0, analysis.Score)
	assert.Equal(0, analysis.Length)
	assert.Contains(analysis.Issues, "Title is missing")
	assert.Contains(analysis.Suggestions, "Add a descriptive title")
}

func TestAnalyzeTitleOptimal(t *testing.T) {
	assert := assert.New(t)

	title := "The Complete Guide to On-Page SEO for Busy Developers"
	assert.GreaterOrEqual(len(title), 30)
	assert.LessOrEqual(len(title), 60)

	analysis := AnalyzeTitle(title, []string{"seo"})
	assert.Equal(100, analysis.Score)
	assert.True(analysis.HasKeyword)
	assert.Empty(analysis.Issues)
	// "complete" and "guide" are power words, so no opener suggestion
	assert.Empty(analysis.Suggestions)
}

func TestAnalyzeTitleDeductions(t *testing.T) {
	assert := assert.New(t)

	// Too short and missing the keyword
	analysis := AnalyzeTitle("Hello", []string{"seo"})
	assert.Equal(55, analysis.Score) // 100 - 20 - 25
	assert.False(analysis.HasKeyword)
	assert.Contains(analysis.Issues, "Title is too short")
	assert.Contains(analysis.Issues, "Primary keyword not found in title")
	assert.Contains(analysis.Suggestions, "Consider starting with a number or adding a power word")

	// Too long
	long := strings.Repeat("seo word ", 10)
	analysis = AnalyzeTitle(long, []string{"seo"})
	assert.Greater(len(long), 60)
	assert.Equal(90, analysis.Score)
	assert.Contains(analysis.Issues, "Title may be truncated in search results")
}

func TestAnalyzeTitleKeywordMonotone(t *testing.T) {
	assert := assert.New(t)

	withKeyword := AnalyzeTitle("Practical seo writing advice for modern blogs", []string{"seo"})
	withoutKeyword := AnalyzeTitle("Practical web writing advice for modern blogs", []string{"seo"})
	assert.Greater(withKeyword.Score, withoutKeyword.Score)
}

func TestAnalyzeTitleNumberOpener(t *testing.T) {
	assert := assert.New(t)

	analysis := AnalyzeTitle("7 ways to write faster articles for the web now", []string{"articles"})
	assert.NotContains(analysis.Suggestions, "Consider starting with a number or adding a power word")
}

func TestReadabilityEmpty(t *testing.T) {
	assert := assert.New(t)

	result := Readability("")
	assert.Equal(0, result.Score)
	assert.Empty(result.Level)
}

func TestReadabilitySimpleText(t *testing.T) {
	assert := assert.New(t)

	result := Readability("The cat sat on the mat.")
	assert.Equal(100, result.Score)
	assert.Equal("Very Easy (5th grade)", result.Level)
	assert.Equal("6.0", result.AvgSentenceLength)
	assert.Equal("1.00", result.AvgSyllablesPerWord)
}

func TestReadabilityHarderTextScoresLower(t *testing.T) {
	assert := assert.New(t)

	easy := Readability("The dog ran. The dog sat. The dog ate.")
	hard := Readability("Organizational interdependencies necessitate comprehensive administrative reconfiguration throughout multinational conglomerates undergoing simultaneous technological transformation initiatives.")
	assert.Greater(easy.Score, hard.Score)
}

func TestReadabilityLevels(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Very Easy (5th grade)", readabilityLevel(95))
	assert.Equal("Easy (6th grade)", readabilityLevel(85))
	assert.Equal("Fairly Easy (7th grade)", readabilityLevel(75))
	assert.Equal("Standard (8th-9th grade)", readabilityLevel(65))
	assert.Equal("Fairly Difficult (10th-12th grade)", readabilityLevel(55))
	assert.Equal("Difficult (College)", readabilityLevel(35))
	assert.Equal("Very Difficult (College Graduate)", readabilityLevel(10))
}

func TestChecklist(t *testing.T) {
	assert := assert.New(t)

	title := "The Complete Guide to On-Page SEO for Busy Developers"
	meta := strings.Repeat("m", 155)
	content := strings.Repeat("filler ", 98) + "seo seo"
	assert.Equal(100, WordCount(content))

	checklist := Checklist(title, content, meta, []string{"seo"})
	assert.Len(checklist, 6)

	byItem := map[string]ChecklistItem{}
	for _, item := range checklist {
		byItem[item.Item] = item
	}

	assert.True(byItem["Title length (50-60 chars)"].Passed)
	assert.True(byItem["Keyword in title"].Passed)
	assert.Equal("Check keywords", byItem["Keyword in title"].Current)
	assert.True(byItem["Meta description length (150-160 chars)"].Passed)
	assert.Equal("155 characters", byItem["Meta description length (150-160 chars)"].Current)

	assert.False(byItem["Minimum word count (300+ words)"].Passed)
	assert.Equal("100 words", byItem["Minimum word count (300+ words)"].Current)
	assert.False(byItem["Optimal word count (1000+ words)"].Passed)

	// 2 occurrences in 100 words is 2.00%, inside the 1-3% band
	assert.True(byItem["Keyword density (1-3%)"].Passed)
	assert.Equal("2.00%", byItem["Keyword density (1-3%)"].Current)
}

func TestChecklistEmptyDraft(t *testing.T) {
	assert := assert.New(t)

	checklist := Checklist("", "", "", nil)
	assert.Len(checklist, 6)
	for _, item := range checklist {
		assert.False(item.Passed, item.Item)
	}
	assert.Equal("No title", checklist[0].Current)
	assert.Equal("No keywords set", checklist[1].Current)
	assert.Equal("No meta description", checklist[2].Current)
}

func TestBasicMetrics(t *testing.T) {
	assert := assert.New(t)

	content := "First sentence here. Second sentence follows!\n\nSecond paragraph now."
	metrics := BasicMetrics("A title about sentences", content, []string{"sentence"})

	assert.Equal(9, metrics.WordCount)
	assert.Equal(len(content), metrics.CharacterCount)
	assert.Equal(3, metrics.SentenceCount)
	assert.Equal(2, metrics.ParagraphCount)
	assert.Equal(1, metrics.ReadingTime)
	assert.Equal(2, metrics.Keywords.TotalOccurrences)
	assert.True(metrics.Title.HasKeyword)
	assert.NotZero(metrics.Readability.Score)
}
