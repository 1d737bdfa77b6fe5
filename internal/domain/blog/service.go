package blog

import (
	"errors"

	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

// ErrBlogNotFound is returned when no active blog matches the id
var ErrBlogNotFound = errors.New("blog not found")

// Service wraps the blog store with not-found signaling
type Service interface {
	CreateBlog(req CreateRequest) (*Blog, error)
	GetBlog(id string) (*Blog, error)
	ListBlogs(query utils.PageQuery, searchNameTerm string) (utils.Page[View], error)
	UpdateBlog(id string, req CreateRequest) error
	DeleteBlog(id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo}
}

func (s *service) CreateBlog(req CreateRequest) (*Blog, error) {
	b := &Blog{
		Name:           req.Name,
		Description:    req.Description,
		WebsiteURL:     req.WebsiteURL,
		DeletionStatus: DeletionStatusActive,
	}
	if err := s.repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBlog(id string) (*Blog, error) {
	b, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) ListBlogs(query utils.PageQuery, searchNameTerm string) (utils.Page[View], error) {
	blogs, total, err := s.repo.List(query, searchNameTerm)
	if err != nil {
		return utils.Page[View]{}, err
	}

	views := make([]View, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, b.ToView())
	}
	return utils.NewPage(views, total, query), nil
}

func (s *service) UpdateBlog(id string, req CreateRequest) error {
	affected, err := s.repo.Update(id, req)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (s *service) DeleteBlog(id string) error {
	affected, err := s.repo.SoftDelete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBlogNotFound
	}
	return nil
}
