// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/service/analyzer"
)

// Role represents a user role in the system
type Role struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(50);unique;not null;index"`
	Description string `gorm:"type:text"`
	// Relationships
	Users []User `gorm:"foreignKey:RoleID"`
}

// User represents a system user
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string         `gorm:"type:varchar(100);unique;not null;index"`
	Email        string         `gorm:"type:varchar(255);unique;not null;index"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	RoleID       uint           `gorm:"not null;index"`
	Role         Role           `gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	// Relationships
	Contents []Content `gorm:"foreignKey:UserID"`
}

// Content represents a content draft being optimized for search
type Content struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index"`
	User            User                        `gorm:"foreignKey:UserID"`
	Title           string                      `gorm:"type:varchar(200);not null"`
	Content         string                      `gorm:"type:text;not null"`
	ContentHTML     string                      `gorm:"type:text"`
	MetaDescription string                      `gorm:"type:varchar(160)"`
	TargetKeywords  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status          ContentStatus               `gorm:"type:varchar(50);not null;default:'draft';index"`
	// PriorStatus holds the status to restore when a running analysis fails.
	PriorStatus      ContentStatus `gorm:"type:varchar(50);default:''"`
	CurrentSEOScore  int           `gorm:"not null;default:0;index"`
	LatestAnalysisID *uuid.UUID    `gorm:"type:uuid"`
	LatestAnalysis   *SEOAnalysis  `gorm:"foreignKey:LatestAnalysisID"`
	// WordCount and ReadingTime are derived from Content on every save,
	// never settable by callers.
	WordCount   int            `gorm:"not null;default:0"`
	ReadingTime int            `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime;index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	// Relationships
	Revisions []Revision    `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
	Analyses  []SEOAnalysis `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
}

// BeforeSave recomputes the derived reading metrics
func (c *Content) BeforeSave(tx *gorm.DB) error {
	c.WordCount = analyzer.WordCount(c.Content)
	c.ReadingTime = analyzer.ReadingTime(c.Content)
	return nil
}

// Revision is an immutable snapshot of a content draft. Version numbers are
// dense per content item, starting at 1, and assigned inside the append
// transaction.
type Revision struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_revisions_content_version"`
	Version     int          `gorm:"not null;uniqueIndex:idx_revisions_content_version"`
	Title       string       `gorm:"type:varchar(200);not null"`
	Content     string       `gorm:"type:text;not null"`
	ContentHTML string       `gorm:"type:text"`
	SEOScore    int          `gorm:"not null;default:0"`
	AnalysisID  *uuid.UUID   `gorm:"type:uuid"`
	Analysis    *SEOAnalysis `gorm:"foreignKey:AnalysisID"`
	Changes     string       `gorm:"type:text;not null;default:'Initial version'"`
	WordCount   int          `gorm:"not null;default:0"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;index"`
}

// ScoreBreakdown holds the seven fixed per-category scores, each 0-100
type ScoreBreakdown struct {
	KeywordDensity    int `json:"keywordDensity"`
	Readability       int `json:"readability"`
	TitleOptimization int `json:"titleOptimization"`
	MetaDescription   int `json:"metaDescription"`
	HeadingStructure  int `json:"headingStructure"`
	ContentLength     int `json:"contentLength"`
	KeywordPlacement  int `json:"keywordPlacement"`
}

// SuggestedKeyword is a keyword proposed by the analysis provider
type SuggestedKeyword struct {
	Keyword      string `json:"keyword"`
	Relevance    int    `json:"relevance"`
	SearchVolume string `json:"searchVolume"` // high, medium, low
	Difficulty   string `json:"difficulty"`   // easy, medium, hard
}

// Improvement is a single actionable suggestion from an analysis. Entries
// are only ever mutated to mark them applied.
type Improvement struct {
	Category   string     `json:"category"`
	Suggestion string     `json:"suggestion"`
	Priority   string     `json:"priority"` // high, medium, low
	Impact     int        `json:"impact"`   // 1-10
	Applied    bool       `json:"applied"`
	AppliedAt  *time.Time `json:"appliedAt,omitempty"`
}

// SEOAnalysis represents one analysis run for a content draft
type SEOAnalysis struct {
	ID                       uuid.UUID                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContentID                uuid.UUID                             `gorm:"type:uuid;not null;index"`
	RevisionID               *uuid.UUID                            `gorm:"type:uuid;index"`
	OverallScore             int                                   `gorm:"not null"`
	Scores                   datatypes.JSONType[ScoreBreakdown]    `gorm:"type:jsonb"`
	SuggestedKeywords        datatypes.JSONSlice[SuggestedKeyword] `gorm:"type:jsonb"`
	Improvements             datatypes.JSONSlice[Improvement]      `gorm:"type:jsonb"`
	AIInsights               string                                `gorm:"type:text"`
	SuggestedTitle           string                                `gorm:"type:text"`
	SuggestedMetaDescription string                                `gorm:"type:text"`
	ProviderUsed             string                                `gorm:"type:varchar(50);not null;default:'fallback'"`
	ProcessingMS             int64                                 `gorm:"not null;default:0"`
	CreatedAt                time.Time                             `gorm:"autoCreateTime;index"`
}
