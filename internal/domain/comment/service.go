package comment

import (
	"errors"

	"blogger-platform/internal/domain/like"
	"blogger-platform/internal/domain/post"
	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCommentNotFound is returned when no comment matches the id
	ErrCommentNotFound = errors.New("comment not found")
	// ErrForbidden is returned when a user edits someone else's comment
	ErrForbidden = errors.New("comment belongs to another user")
)

// Service wraps the comment store with ownership checks and like handling
type Service interface {
	CreateComment(postID, userID, userLogin, content string) (View, error)
	GetComment(id, userID string) (View, error)
	ListByPost(postID string, query utils.PageQuery, userID string) (utils.Page[View], error)
	UpdateComment(id, userID, content string) error
	DeleteComment(id, userID string) error
	SetLikeStatus(id, userID, userLogin string, status like.Status) error
}

type service struct {
	repo  Repository
	posts post.Service
	likes like.Repository
}

func NewService(repo Repository, posts post.Service, likes like.Repository) Service {
	return &service{repo: repo, posts: posts, likes: likes}
}

func (s *service) CreateComment(postID, userID, userLogin, content string) (View, error) {
	if _, err := s.posts.GetPost(postID, ""); err != nil {
		return View{}, err
	}

	m := &Comment{
		Content:   content,
		PostID:    postID,
		UserID:    userID,
		UserLogin: userLogin,
	}
	if err := s.repo.Create(m); err != nil {
		return View{}, err
	}
	return m.ToView(like.StatusNone), nil
}

func (s *service) GetComment(id, userID string) (View, error) {
	m, err := s.find(id)
	if err != nil {
		return View{}, err
	}

	myStatus := like.StatusNone
	if userID != "" {
		myStatus, err = s.likes.StatusFor(like.EntityComment, id, userID)
		if err != nil {
			return View{}, err
		}
	}
	return m.ToView(myStatus), nil
}

func (s *service) ListByPost(postID string, query utils.PageQuery, userID string) (utils.Page[View], error) {
	if _, err := s.posts.GetPost(postID, ""); err != nil {
		return utils.Page[View]{}, err
	}

	comments, total, err := s.repo.ListByPost(postID, query)
	if err != nil {
		return utils.Page[View]{}, err
	}

	ids := make([]string, 0, len(comments))
	for _, m := range comments {
		ids = append(ids, m.ID.String())
	}
	statuses, err := s.likes.StatusesFor(like.EntityComment, ids, userID)
	if err != nil {
		return utils.Page[View]{}, err
	}

	views := make([]View, 0, len(comments))
	for _, m := range comments {
		myStatus := like.StatusNone
		if st, ok := statuses[m.ID.String()]; ok {
			myStatus = st
		}
		views = append(views, m.ToView(myStatus))
	}
	return utils.NewPage(views, total, query), nil
}

func (s *service) UpdateComment(id, userID, content string) error {
	m, err := s.find(id)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrForbidden
	}
	return s.repo.UpdateContent(id, content)
}

func (s *service) DeleteComment(id, userID string) error {
	m, err := s.find(id)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

// SetLikeStatus records the user's vote and adjusts the comment counters by
// the difference between the previous and the new status
func (s *service) SetLikeStatus(id, userID, userLogin string, status like.Status) error {
	if _, err := s.find(id); err != nil {
		return err
	}

	previous, err := s.likes.Set(like.EntityComment, id, userID, userLogin, status)
	if err != nil {
		return err
	}
	if previous == status {
		return nil
	}

	likesDelta, dislikesDelta := 0, 0
	switch status {
	case like.StatusLike:
		likesDelta++
	case like.StatusDislike:
		dislikesDelta++
	}
	switch previous {
	case like.StatusLike:
		likesDelta--
	case like.StatusDislike:
		dislikesDelta--
	}
	return s.repo.ApplyLikeDelta(id, likesDelta, dislikesDelta)
}

func (s *service) find(id string) (*Comment, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return m, nil
}
