package blog

import (
	"time"

	"blogger-platform/internal/database"
)

// DeletionStatus marks soft-deleted blogs
type DeletionStatus string

const (
	DeletionStatusActive  DeletionStatus = "active"
	DeletionStatusDeleted DeletionStatus = "deleted"
)

type Blog struct {
	database.BaseModel

	Name           string         `gorm:"column:name;not null"`
	Description    string         `gorm:"column:description;type:text"`
	WebsiteURL     string         `gorm:"column:website_url"`
	IsMembership   bool           `gorm:"column:is_membership;default:false"`
	DeletionStatus DeletionStatus `gorm:"column:deletion_status;type:text;default:active"`
}

func (Blog) TableName() string {
	return "blogs"
}

// View is the public blog payload
type View struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	WebsiteURL   string `json:"websiteUrl"`
	CreatedAt    string `json:"createdAt"`
	IsMembership bool   `json:"isMembership"`
}

// ToView converts a Blog to its public View
func (b *Blog) ToView() View {
	return View{
		ID:           b.ID.String(),
		Name:         b.Name,
		Description:  b.Description,
		WebsiteURL:   b.WebsiteURL,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		IsMembership: b.IsMembership,
	}
}

// CreateRequest is the input for creating or updating a blog
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}
