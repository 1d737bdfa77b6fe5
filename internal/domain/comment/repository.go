package comment

import (
	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"createdAt": "created_at",
}

// Repository is the storage layer for comments
type Repository interface {
	Create(m *Comment) error
	FindByID(id string) (*Comment, error)
	ListByPost(postID string, query utils.PageQuery) ([]Comment, int64, error)
	UpdateContent(id, content string) error
	Delete(id string) error
	ApplyLikeDelta(id string, likesDelta, dislikesDelta int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(m *Comment) error {
	return r.db.Create(m).Error
}

func (r *repository) FindByID(id string) (*Comment, error) {
	var m Comment
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListByPost(postID string, query utils.PageQuery) ([]Comment, int64, error) {
	q := r.db.Model(&Comment{}).Where("post_id = ?", postID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []Comment
	err := q.Order(query.OrderClause(sortColumns, "created_at")).
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *repository) UpdateContent(id, content string) error {
	return r.db.Model(&Comment{}).Where("id = ?", id).
		Update("content", content).Error
}

func (r *repository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&Comment{}).Error
}

// ApplyLikeDelta adjusts both counters in one statement so concurrent
// like-status changes never lose an increment.
func (r *repository) ApplyLikeDelta(id string, likesDelta, dislikesDelta int) error {
	if likesDelta == 0 && dislikesDelta == 0 {
		return nil
	}
	updates := map[string]any{}
	if likesDelta != 0 {
		updates["likes_count"] = gorm.Expr("likes_count + ?", likesDelta)
	}
	if dislikesDelta != 0 {
		updates["dislikes_count"] = gorm.Expr("dislikes_count + ?", dislikesDelta)
	}
	return r.db.Model(&Comment{}).Where("id = ?", id).Updates(updates).Error
}
