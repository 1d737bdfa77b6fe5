package post

import (
	"time"

	"blogger-platform/internal/database"
	"blogger-platform/internal/domain/like"
)

// DeletionStatus marks soft-deleted posts
type DeletionStatus string

const (
	DeletionStatusActive  DeletionStatus = "active"
	DeletionStatusDeleted DeletionStatus = "deleted"
)

// Post belongs to a blog. The blog name is denormalized at creation so list
// queries need no join; counters are maintained with conditional increments.
type Post struct {
	database.BaseModel

	Title            string `gorm:"column:title;not null"`
	ShortDescription string `gorm:"column:short_description"`
	Content          string `gorm:"column:content;type:text"`
	BlogID           string `gorm:"column:blog_id;type:uuid;not null;index"`
	BlogName         string `gorm:"column:blog_name;not null"`

	LikesCount    int `gorm:"column:likes_count;default:0"`
	DislikesCount int `gorm:"column:dislikes_count;default:0"`

	DeletionStatus DeletionStatus `gorm:"column:deletion_status;type:text;default:active"`
}

func (Post) TableName() string {
	return "posts"
}

// ExtendedLikesInfo is the likes summary on post views
type ExtendedLikesInfo struct {
	LikesCount    int               `json:"likesCount"`
	DislikesCount int               `json:"dislikesCount"`
	MyStatus      like.Status       `json:"myStatus"`
	NewestLikes   []like.NewestLike `json:"newestLikes"`
}

// View is the public post payload
type View struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	ShortDescription  string            `json:"shortDescription"`
	Content           string            `json:"content"`
	BlogID            string            `json:"blogId"`
	BlogName          string            `json:"blogName"`
	CreatedAt         string            `json:"createdAt"`
	ExtendedLikesInfo ExtendedLikesInfo `json:"extendedLikesInfo"`
}

// ToView converts a Post to its public View
func (p *Post) ToView(myStatus like.Status, newest []like.NewestLike) View {
	if newest == nil {
		newest = []like.NewestLike{}
	}
	return View{
		ID:               p.ID.String(),
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		BlogID:           p.BlogID,
		BlogName:         p.BlogName,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		ExtendedLikesInfo: ExtendedLikesInfo{
			LikesCount:    p.LikesCount,
			DislikesCount: p.DislikesCount,
			MyStatus:      myStatus,
			NewestLikes:   newest,
		},
	}
}

// CreateRequest is the input for creating or updating a post
type CreateRequest struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           string `json:"blogId"`
}

// LikeRequest is the input for the like-status endpoint
type LikeRequest struct {
	LikeStatus like.Status `json:"likeStatus"`
}
