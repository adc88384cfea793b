package models

import "fmt"

// ContentStatus is the lifecycle state of a content draft
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusAnalyzing ContentStatus = "analyzing"
	StatusOptimized ContentStatus = "optimized"
	StatusPublished ContentStatus = "published"
)

// statusTransitions is the explicit transition table for the content
// lifecycle. analyzing may return to any status it was entered from.
var statusTransitions = map[ContentStatus][]ContentStatus{
	StatusDraft:     {StatusAnalyzing, StatusPublished},
	StatusAnalyzing: {StatusDraft, StatusOptimized, StatusPublished},
	StatusOptimized: {StatusAnalyzing, StatusPublished},
	StatusPublished: {StatusAnalyzing, StatusDraft},
}

// CanTransition reports whether moving from s to target is allowed
func (s ContentStatus) CanTransition(target ContentStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status
func (s ContentStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// BeginAnalysis moves the draft into the analyzing state, remembering the
// status to restore if the analysis fails.
func (c *Content) BeginAnalysis() error {
	if !c.Status.CanTransition(StatusAnalyzing) {
		return fmt.Errorf("cannot start analysis from status %q", c.Status)
	}
	c.PriorStatus = c.Status
	c.Status = StatusAnalyzing
	return nil
}

// CompleteAnalysis moves the draft from analyzing to optimized
func (c *Content) CompleteAnalysis() error {
	if c.Status != StatusAnalyzing {
		return fmt.Errorf("cannot complete analysis from status %q", c.Status)
	}
	c.Status = StatusOptimized
	c.PriorStatus = ""
	return nil
}

// FailAnalysis rolls the draft back to the status it had before the
// analysis started. A draft is never left stuck in analyzing.
func (c *Content) FailAnalysis() {
	if c.Status != StatusAnalyzing {
		return
	}
	if c.PriorStatus.Valid() {
		c.Status = c.PriorStatus
	} else {
		c.Status = StatusDraft
	}
	c.PriorStatus = ""
}
