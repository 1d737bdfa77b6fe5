package post

import (
	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"createdAt":        "created_at",
	"title":            "title",
	"blogId":           "blog_id",
	"blogName":         "blog_name",
	"shortDescription": "short_description",
}

// Repository is the storage layer for posts
type Repository interface {
	Create(p *Post) error
	FindByID(id string) (*Post, error)
	List(query utils.PageQuery) ([]Post, int64, error)
	ListByBlog(blogID string, query utils.PageQuery) ([]Post, int64, error)
	Update(id, blogID string, req CreateRequest) (int64, error)
	SoftDelete(id, blogID string) (int64, error)
	ApplyLikeDelta(id string, likesDelta, dislikesDelta int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(p *Post) error {
	return r.db.Create(p).Error
}

func (r *repository) FindByID(id string) (*Post, error) {
	var p Post
	err := r.db.Where("id = ? AND deletion_status = ?", id, DeletionStatusActive).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(query utils.PageQuery) ([]Post, int64, error) {
	return r.list(r.db.Model(&Post{}).Where("deletion_status = ?", DeletionStatusActive), query)
}

func (r *repository) ListByBlog(blogID string, query utils.PageQuery) ([]Post, int64, error) {
	q := r.db.Model(&Post{}).
		Where("blog_id = ? AND deletion_status = ?", blogID, DeletionStatusActive)
	return r.list(q, query)
}

func (r *repository) list(q *gorm.DB, query utils.PageQuery) ([]Post, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []Post
	err := q.Order(query.OrderClause(sortColumns, "created_at")).
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *repository) Update(id, blogID string, req CreateRequest) (int64, error) {
	res := r.db.Model(&Post{}).
		Where("id = ? AND blog_id = ? AND deletion_status = ?", id, blogID, DeletionStatusActive).
		Updates(map[string]any{
			"title":             req.Title,
			"short_description": req.ShortDescription,
			"content":           req.Content,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) SoftDelete(id, blogID string) (int64, error) {
	res := r.db.Model(&Post{}).
		Where("id = ? AND blog_id = ? AND deletion_status = ?", id, blogID, DeletionStatusActive).
		Update("deletion_status", DeletionStatusDeleted)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
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
	return r.db.Model(&Post{}).Where("id = ?", id).Updates(updates).Error
}
