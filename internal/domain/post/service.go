package post

import (
	"errors"

	"blogger-platform/internal/domain/blog"
	"blogger-platform/internal/domain/like"
	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

const newestLikesLimit = 3

// ErrPostNotFound is returned when no active post matches the id
var ErrPostNotFound = errors.New("post not found")

// Service wraps the post store with blog-existence checks and like handling.
// List and get operations take the caller's user id (empty for anonymous) so
// views carry the caller's own vote.
type Service interface {
	CreatePost(req CreateRequest) (View, error)
	GetPost(id, userID string) (View, error)
	ListPosts(query utils.PageQuery, userID string) (utils.Page[View], error)
	ListByBlog(blogID string, query utils.PageQuery, userID string) (utils.Page[View], error)
	UpdatePost(id, blogID string, req CreateRequest) error
	DeletePost(id, blogID string) error
	DeletePostByID(id string) error
	SetLikeStatus(id, userID, userLogin string, status like.Status) error
}

type service struct {
	repo  Repository
	blogs blog.Service
	likes like.Repository
}

func NewService(repo Repository, blogs blog.Service, likes like.Repository) Service {
	return &service{repo: repo, blogs: blogs, likes: likes}
}

func (s *service) CreatePost(req CreateRequest) (View, error) {
	b, err := s.blogs.GetBlog(req.BlogID)
	if err != nil {
		return View{}, err
	}

	p := &Post{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Content:          req.Content,
		BlogID:           b.ID.String(),
		BlogName:         b.Name,
		DeletionStatus:   DeletionStatusActive,
	}
	if err := s.repo.Create(p); err != nil {
		return View{}, err
	}
	return p.ToView(like.StatusNone, nil), nil
}

func (s *service) GetPost(id, userID string) (View, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return View{}, ErrPostNotFound
		}
		return View{}, err
	}

	myStatus := like.StatusNone
	if userID != "" {
		myStatus, err = s.likes.StatusFor(like.EntityPost, id, userID)
		if err != nil {
			return View{}, err
		}
	}

	newest, err := s.likes.NewestLikes(like.EntityPost, []string{id}, newestLikesLimit)
	if err != nil {
		return View{}, err
	}
	return p.ToView(myStatus, newest[id]), nil
}

func (s *service) ListPosts(query utils.PageQuery, userID string) (utils.Page[View], error) {
	posts, total, err := s.repo.List(query)
	if err != nil {
		return utils.Page[View]{}, err
	}
	views, err := s.toViews(posts, userID)
	if err != nil {
		return utils.Page[View]{}, err
	}
	return utils.NewPage(views, total, query), nil
}

func (s *service) ListByBlog(blogID string, query utils.PageQuery, userID string) (utils.Page[View], error) {
	if _, err := s.blogs.GetBlog(blogID); err != nil {
		return utils.Page[View]{}, err
	}

	posts, total, err := s.repo.ListByBlog(blogID, query)
	if err != nil {
		return utils.Page[View]{}, err
	}
	views, err := s.toViews(posts, userID)
	if err != nil {
		return utils.Page[View]{}, err
	}
	return utils.NewPage(views, total, query), nil
}

// toViews batches the like lookups for a page of posts
func (s *service) toViews(posts []Post, userID string) ([]View, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID.String())
	}

	statuses, err := s.likes.StatusesFor(like.EntityPost, ids, userID)
	if err != nil {
		return nil, err
	}
	newest, err := s.likes.NewestLikes(like.EntityPost, ids, newestLikesLimit)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(posts))
	for _, p := range posts {
		id := p.ID.String()
		myStatus := like.StatusNone
		if st, ok := statuses[id]; ok {
			myStatus = st
		}
		views = append(views, p.ToView(myStatus, newest[id]))
	}
	return views, nil
}

func (s *service) UpdatePost(id, blogID string, req CreateRequest) error {
	if _, err := s.blogs.GetBlog(blogID); err != nil {
		return err
	}

	affected, err := s.repo.Update(id, blogID, req)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *service) DeletePost(id, blogID string) error {
	if _, err := s.blogs.GetBlog(blogID); err != nil {
		return err
	}

	affected, err := s.repo.SoftDelete(id, blogID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePostByID soft-deletes a post addressed without its blog
func (s *service) DeletePostByID(id string) error {
	p, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	affected, err := s.repo.SoftDelete(id, p.BlogID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// SetLikeStatus records the user's vote and adjusts the post counters by the
// difference between the previous and the new status
func (s *service) SetLikeStatus(id, userID, userLogin string, status like.Status) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	previous, err := s.likes.Set(like.EntityPost, id, userID, userLogin, status)
	if err != nil {
		return err
	}
	if previous == status {
		return nil
	}

	return s.repo.ApplyLikeDelta(id, likeDelta(previous, status, like.StatusLike), likeDelta(previous, status, like.StatusDislike))
}

func likeDelta(previous, next, target like.Status) int {
	delta := 0
	if next == target {
		delta++
	}
	if previous == target {
		delta--
	}
	return delta
}
