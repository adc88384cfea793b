package repository

import (
	"gorm.io/gorm"
)

// Factory provides access to all repositories
type Factory struct {
	UserRepository     UserRepository
	ContentRepository  ContentRepository
	RevisionRepository RevisionRepository
	AnalysisRepository AnalysisRepository
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(db *gorm.DB) *Factory {
	return &Factory{
		UserRepository:     NewUserRepository(db),
		ContentRepository:  NewContentRepository(db),
		RevisionRepository: NewRevisionRepository(db),
		AnalysisRepository: NewAnalysisRepository(db),
	}
}
