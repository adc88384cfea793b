package seed

import (
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chynybekuuludastan/content_optimizer/internal/models"
	"github.com/chynybekuuludastan/content_optimizer/internal/utils/password"
)

// SeedDefaultRoles seeds default roles if they don't exist
func SeedDefaultRoles(db *gorm.DB) error {
	var count int64
	db.Model(&models.Role{}).Count(&count)
	if count > 0 {
		log.Println("Roles already seeded, skipping...")
		return nil
	}

	log.Println("Seeding default roles...")
	roles := []models.Role{
		{Name: "admin", Description: "Administrator with full access to all features"},
		{Name: "editor", Description: "User who can create and optimize content"},
	}

	return db.Create(&roles).Error
}

// SeedDefaultUsers seeds default admin and editor users if they don't exist
func SeedDefaultUsers(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return nil
	}

	// Get roles
	var adminRole, editorRole models.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "editor").First(&editorRole).Error; err != nil {
		return err
	}

	log.Println("Seeding default users...")

	adminHash, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	adminUser := models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: adminHash,
		RoleID:       adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	editorHash, err := password.Hash("editor123")
	if err != nil {
		return err
	}

	editorUser := models.User{
		Username:     "editor",
		Email:        "editor@example.com",
		PasswordHash: editorHash,
		RoleID:       editorRole.ID,
	}

	return db.Create(&editorUser).Error
}

// SeedSampleContent seeds a sample draft with its initial revision if none exist
func SeedSampleContent(db *gorm.DB) error {
	var count int64
	db.Model(&models.Content{}).Count(&count)
	if count > 0 {
		log.Println("Content already seeded, skipping...")
		return nil
	}

	var editorUser models.User
	if err := db.Where("username = ?", "editor").First(&editorUser).Error; err != nil {
		return err
	}

	log.Println("Seeding sample content...")

	body := "Search engine optimization starts with understanding what your " +
		"readers are looking for. Pick a small set of target keywords, use them " +
		"naturally in the title and the opening paragraph, and keep sentences " +
		"short enough to stay readable. A meta description between 150 and 160 " +
		"characters gives search engines a clean summary to display."

	content := models.Content{
		UserID:          editorUser.ID,
		Title:           "The Complete Guide to On-Page SEO",
		Content:         body,
		MetaDescription: "Learn the essentials of on-page SEO: keyword targeting, titles, meta descriptions and readability, with practical steps you can apply today.",
		TargetKeywords:  datatypes.NewJSONSlice([]string{"on-page seo", "seo guide"}),
		Status:          models.StatusDraft,
	}

	if err := db.Create(&content).Error; err != nil {
		return err
	}

	revision := models.Revision{
		ContentID: content.ID,
		Version:   1,
		Title:     content.Title,
		Content:   content.Content,
		Changes:   "Initial draft created",
		WordCount: content.WordCount,
	}

	return db.Create(&revision).Error
}

// SeedAll runs all seed functions
func SeedAll(db *gorm.DB) error {
	log.Println("Starting database seeding...")

	if err := SeedDefaultRoles(db); err != nil {
		return err
	}

	if err := SeedDefaultUsers(db); err != nil {
		return err
	}

	if err := SeedSampleContent(db); err != nil {
		return err
	}

	log.Println("Database seeding completed successfully")
	return nil
}
