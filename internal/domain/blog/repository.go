package blog

import (
	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
}

// Repository is the storage layer for blogs
type Repository interface {
	Create(b *Blog) error
	FindByID(id string) (*Blog, error)
	List(query utils.PageQuery, searchNameTerm string) ([]Blog, int64, error)
	Update(id string, req CreateRequest) (int64, error)
	SoftDelete(id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(b *Blog) error {
	return r.db.Create(b).Error
}

func (r *repository) FindByID(id string) (*Blog, error) {
	var b Blog
	err := r.db.Where("id = ? AND deletion_status = ?", id, DeletionStatusActive).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) List(query utils.PageQuery, searchNameTerm string) ([]Blog, int64, error) {
	q := r.db.Model(&Blog{}).Where("deletion_status = ?", DeletionStatusActive)
	if searchNameTerm != "" {
		q = q.Where("name ILIKE ?", "%"+searchNameTerm+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []Blog
	err := q.Order(query.OrderClause(sortColumns, "created_at")).
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *repository) Update(id string, req CreateRequest) (int64, error) {
	res := r.db.Model(&Blog{}).
		Where("id = ? AND deletion_status = ?", id, DeletionStatusActive).
		Updates(map[string]any{
			"name":        req.Name,
			"description": req.Description,
			"website_url": req.WebsiteURL,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) SoftDelete(id string) (int64, error) {
	res := r.db.Model(&Blog{}).
		Where("id = ? AND deletion_status = ?", id, DeletionStatusActive).
		Update("deletion_status", DeletionStatusDeleted)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
