// internal/database/migration/migrations_impl.go
package migration

import (
	"gorm.io/gorm"
)

// CreateRolesTable creates the roles table
func CreateRolesTable(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE IF NOT EXISTS roles (
			id SERIAL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE,
			description TEXT
		)
	`).Error
}

// DropRolesTable drops the roles table
func DropRolesTable(tx *gorm.DB) error {
	return tx.Exec("DROP TABLE IF EXISTS roles CASCADE").Error
}

// CreateUsersTable creates the users table
func CreateUsersTable(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role_id INTEGER NOT NULL REFERENCES roles(id),
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at TIMESTAMP WITH TIME ZONE
		)
	`).Error
}

// DropUsersTable drops the users table
func DropUsersTable(tx *gorm.DB) error {
	return tx.Exec("DROP TABLE IF EXISTS users CASCADE").Error
}

// CreateContentsTable creates the contents table
func CreateContentsTable(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE IF NOT EXISTS contents (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			content_html TEXT,
			meta_description VARCHAR(160),
			target_keywords JSONB,
			status VARCHAR(50) NOT NULL DEFAULT 'draft',
			prior_status VARCHAR(50) DEFAULT '',
			current_seo_score INTEGER NOT NULL DEFAULT 0,
			latest_analysis_id UUID,
			word_count INTEGER NOT NULL DEFAULT 0,
			reading_time INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at TIMESTAMP WITH TIME ZONE
		)
	`).Error
}

// DropContentsTable drops the contents table
func DropContentsTable(tx *gorm.DB) error {
	return tx.Exec("DROP TABLE IF EXISTS contents CASCADE").Error
}

// CreateRevisionsTable creates the revisions table
func CreateRevisionsTable(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE IF NOT EXISTS revisions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			content_id UUID NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			content_html TEXT,
			seo_score INTEGER NOT NULL DEFAULT 0,
			analysis_id UUID,
			changes TEXT NOT NULL DEFAULT 'Initial version',
			word_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (content_id, version)
		)
	`).Error
}

// DropRevisionsTable drops the revisions table
func DropRevisionsTable(tx *gorm.DB) error {
	return tx.Exec("DROP TABLE IF EXISTS revisions CASCADE").Error
}

// CreateSEOAnalysesTable creates the seo_analyses table
func CreateSEOAnalysesTable(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE IF NOT EXISTS seo_analyses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			content_id UUID NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
			revision_id UUID REFERENCES revisions(id),
			overall_score INTEGER NOT NULL,
			scores JSONB,
			suggested_keywords JSONB,
			improvements JSONB,
			ai_insights TEXT,
			suggested_title TEXT,
			suggested_meta_description TEXT,
			provider_used VARCHAR(50) NOT NULL DEFAULT 'fallback',
			processing_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error
}

// DropSEOAnalysesTable drops the seo_analyses table
func DropSEOAnalysesTable(tx *gorm.DB) error {
	return tx.Exec("DROP TABLE IF EXISTS seo_analyses CASCADE").Error
}

// AddIndexes adds indexes to improve query performance
func AddIndexes(tx *gorm.DB) error {
	// Users indexes
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_users_role_id ON users(role_id)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)").Error; err != nil {
		return err
	}

	// Contents indexes
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_contents_user_id ON contents(user_id)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_contents_status ON contents(status)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_contents_current_seo_score ON contents(current_seo_score)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_contents_updated_at ON contents(updated_at)").Error; err != nil {
		return err
	}

	// Composite index for the common list query
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_contents_user_status ON contents(user_id, status)").Error; err != nil {
		return err
	}

	// Revisions indexes
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_revisions_content_version ON revisions(content_id, version)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_revisions_created_at ON revisions(created_at)").Error; err != nil {
		return err
	}

	// Analyses indexes
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_seo_analyses_content_id ON seo_analyses(content_id)").Error; err != nil {
		return err
	}
	if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_seo_analyses_created_at ON seo_analyses(created_at)").Error; err != nil {
		return err
	}

	return nil
}

// RemoveIndexes removes the indexes created by AddIndexes
func RemoveIndexes(tx *gorm.DB) error {
	indexes := []string{
		"idx_users_role_id", "idx_users_email", "idx_users_username",
		"idx_contents_user_id", "idx_contents_status", "idx_contents_current_seo_score",
		"idx_contents_updated_at", "idx_contents_user_status",
		"idx_revisions_content_version", "idx_revisions_created_at",
		"idx_seo_analyses_content_id", "idx_seo_analyses_created_at",
	}

	for _, index := range indexes {
		if err := tx.Exec("DROP INDEX IF EXISTS " + index).Error; err != nil {
			return err
		}
	}

	return nil
}
