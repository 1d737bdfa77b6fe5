package like

import (
	"blogger-platform/internal/database"
)

// EntityType names the kind of entity a like row points at
type EntityType string

const (
	EntityPost    EntityType = "Post"
	EntityComment EntityType = "Comment"
)

// Status is a user's vote on an entity
type Status string

const (
	StatusNone    Status = "None"
	StatusLike    Status = "Like"
	StatusDislike Status = "Dislike"
)

// IsValid reports whether the status is one of the three allowed values
func (s Status) IsValid() bool {
	switch s {
	case StatusNone, StatusLike, StatusDislike:
		return true
	default:
		return false
	}
}

// Like is one user's vote on one entity. A single table serves posts and
// comments, discriminated by entity type.
type Like struct {
	database.BaseModel

	EntityType EntityType `gorm:"column:entity_type;type:text;not null;uniqueIndex:idx_likes_entity_user"`
	EntityID   string     `gorm:"column:entity_id;type:uuid;not null;uniqueIndex:idx_likes_entity_user"`
	UserID     string     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_likes_entity_user"`
	UserLogin  string     `gorm:"column:user_login;not null"`
	Status     Status     `gorm:"column:status;type:text;not null"`
}

func (Like) TableName() string {
	return "likes"
}

// Info is the likes summary embedded in post and comment views
type Info struct {
	LikesCount    int    `json:"likesCount"`
	DislikesCount int    `json:"dislikesCount"`
	MyStatus      Status `json:"myStatus"`
}

// NewestLike is one entry of a post's newest-likes list
type NewestLike struct {
	AddedAt string `json:"addedAt"`
	UserID  string `json:"userId"`
	Login   string `json:"login"`
}
