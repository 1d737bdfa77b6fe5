package comment

import (
	"time"

	"blogger-platform/internal/database"
	"blogger-platform/internal/domain/like"
)

// Comment is a user's comment on a post
type Comment struct {
	database.BaseModel

	Content   string `gorm:"column:content;type:text;not null"`
	PostID    string `gorm:"column:post_id;type:uuid;not null;index"`
	UserID    string `gorm:"column:user_id;type:uuid;not null"`
	UserLogin string `gorm:"column:user_login;not null"`

	LikesCount    int `gorm:"column:likes_count;default:0"`
	DislikesCount int `gorm:"column:dislikes_count;default:0"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentatorInfo identifies the comment author in views
type CommentatorInfo struct {
	UserID    string `json:"userId"`
	UserLogin string `json:"userLogin"`
}

// View is the public comment payload
type View struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"`
	CommentatorInfo CommentatorInfo `json:"commentatorInfo"`
	CreatedAt       string          `json:"createdAt"`
	LikesInfo       like.Info       `json:"likesInfo"`
}

// ToView converts a Comment to its public View
func (m *Comment) ToView(myStatus like.Status) View {
	return View{
		ID:      m.ID.String(),
		Content: m.Content,
		CommentatorInfo: CommentatorInfo{
			UserID:    m.UserID,
			UserLogin: m.UserLogin,
		},
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		LikesInfo: like.Info{
			LikesCount:    m.LikesCount,
			DislikesCount: m.DislikesCount,
			MyStatus:      myStatus,
		},
	}
}

// CreateRequest is the input for creating or updating a comment
type CreateRequest struct {
	Content string `json:"content"`
}

// LikeRequest is the input for the like-status endpoint
type LikeRequest struct {
	LikeStatus like.Status `json:"likeStatus"`
}
