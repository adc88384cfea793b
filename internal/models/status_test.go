package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert := assert.New(t)

	assert.True(StatusDraft.Valid())
	assert.True(StatusAnalyzing.Valid())
	assert.True(StatusOptimized.Valid())
	assert.True(StatusPublished.Valid())
	assert.False(ContentStatus("archived").Valid())
	assert.False(ContentStatus("").Valid())
}

func TestStatusTransitions(t *testing.T) {
	assert := assert.New(t)

	assert.True(StatusDraft.CanTransition(StatusAnalyzing))
	assert.True(StatusDraft.CanTransition(StatusPublished))
	assert.False(StatusDraft.CanTransition(StatusOptimized))
	assert.False(StatusDraft.CanTransition(StatusDraft))

	assert.True(StatusAnalyzing.CanTransition(StatusDraft))
	assert.True(StatusAnalyzing.CanTransition(StatusOptimized))
	assert.True(StatusAnalyzing.CanTransition(StatusPublished))
	assert.False(StatusAnalyzing.CanTransition(StatusAnalyzing))

	assert.True(StatusOptimized.CanTransition(StatusAnalyzing))
	assert.True(StatusOptimized.CanTransition(StatusPublished))
	assert.False(StatusOptimized.CanTransition(StatusDraft))

	assert.True(StatusPublished.CanTransition(StatusAnalyzing))
	assert.True(StatusPublished.CanTransition(StatusDraft))
	assert.False(StatusPublished.CanTransition(StatusOptimized))
}

func TestBeginAnalysisRecordsPriorStatus(t *testing.T) {
	assert := assert.New(t)

	c := &Content{Status: StatusPublished}
	assert.NoError(c.BeginAnalysis())
	assert.Equal(StatusAnalyzing, c.Status)
	assert.Equal(StatusPublished, c.PriorStatus)

	// A second analysis cannot start while one is running
	assert.Error(c.BeginAnalysis())
}

func TestCompleteAnalysis(t *testing.T) {
	assert := assert.New(t)

	c := &Content{Status: StatusDraft}
	assert.NoError(c.BeginAnalysis())
	assert.NoError(c.CompleteAnalysis())
	assert.Equal(StatusOptimized, c.Status)
	assert.Equal(ContentStatus(""), c.PriorStatus)

	// CompleteAnalysis only applies to a running analysis
	assert.Error(c.CompleteAnalysis())
}

func TestFailAnalysisRestoresPriorStatus(t *testing.T) {
	assert := assert.New(t)

	c := &Content{Status: StatusPublished}
	assert.NoError(c.BeginAnalysis())
	c.FailAnalysis()
	assert.Equal(StatusPublished, c.Status)
	assert.Equal(ContentStatus(""), c.PriorStatus)

	// Without a usable prior status, failure falls back to draft
	c = &Content{Status: StatusAnalyzing}
	c.FailAnalysis()
	assert.Equal(StatusDraft, c.Status)

	// A no-op outside of analyzing
	c = &Content{Status: StatusOptimized, PriorStatus: StatusDraft}
	c.FailAnalysis()
	assert.Equal(StatusOptimized, c.Status)
}

func TestDerivedReadingFields(t *testing.T) {
	assert := assert.New(t)

	c := &Content{Content: "one two three four five"}
	assert.NoError(c.BeforeSave(nil))
	assert.Equal(5, c.WordCount)
	assert.Equal(1, c.ReadingTime)

	// Caller-set values are always overwritten
	c.WordCount = 999
	c.ReadingTime = 42
	assert.NoError(c.BeforeSave(nil))
	assert.Equal(5, c.WordCount)
	assert.Equal(1, c.ReadingTime)
}
