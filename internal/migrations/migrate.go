package migrations

import (
	"fmt"

	"blogger-platform/internal/domain/blog"
	"blogger-platform/internal/domain/comment"
	"blogger-platform/internal/domain/like"
	"blogger-platform/internal/domain/post"
	"blogger-platform/internal/domain/session"
	"blogger-platform/internal/domain/user"
	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&user.User{},
		&session.Session{},
		&blog.Blog{},
		&post.Post{},
		&comment.Comment{},
		&like.Like{},
	)
	if err != nil {
		return fmt.Errorf("failed to make migrations: %w", err)
	}
	return nil
}
