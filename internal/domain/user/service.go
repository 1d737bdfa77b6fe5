package user

import (
	"errors"

	"blogger-platform/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no active user has the given id
	ErrUserNotFound = errors.New("user not found")
	// ErrLoginExists is returned when creating a user with a taken login
	ErrLoginExists = errors.New("user with same login already exists")
	// ErrEmailExists is returned when creating a user with a taken email
	ErrEmailExists = errors.New("user with same email already exists")
)

// Service drives the super-admin user management operations
type Service interface {
	CreateUser(req CreateRequest) (View, error)
	GetUser(id string) (View, error)
	ListUsers(query utils.PageQuery, searchLogin, searchEmail string) (utils.Page[View], error)
	DeleteUser(id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateUser creates a user on the admin's behalf. The account starts
// unconfirmed like a self-registered one, but no confirmation email is sent.
func (s *service) CreateUser(req CreateRequest) (View, error) {
	if existing, err := s.repo.FindByLoginOrEmail(req.Login); err == nil {
		return View{}, takenError(existing, req)
	}
	if existing, err := s.repo.FindByLoginOrEmail(req.Email); err == nil {
		return View{}, takenError(existing, req)
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return View{}, err
	}

	u := &User{
		Login:            req.Login,
		Email:            req.Email,
		PasswordHash:     passwordHash,
		IsEmailConfirmed: false,
		DeletionStatus:   DeletionStatusActive,
		ConfirmationCode: uuid.NewString(),
	}

	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.repo.FindByLogin(req.Login); lookupErr == nil {
				return View{}, ErrLoginExists
			}
			return View{}, ErrEmailExists
		}
		return View{}, err
	}
	return u.ToView(), nil
}

func (s *service) GetUser(id string) (View, error) {
	u, err := s.find(id)
	if err != nil {
		return View{}, err
	}
	return u.ToView(), nil
}

func (s *service) ListUsers(query utils.PageQuery, searchLogin, searchEmail string) (utils.Page[View], error) {
	users, total, err := s.repo.List(query, searchLogin, searchEmail)
	if err != nil {
		return utils.Page[View]{}, err
	}

	views := make([]View, 0, len(users))
	for i := range users {
		views = append(views, users[i].ToView())
	}
	return utils.NewPage(views, total, query), nil
}

func (s *service) DeleteUser(id string) error {
	affected, err := s.repo.SoftDelete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *service) find(id string) (*User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func takenError(existing *User, req CreateRequest) error {
	if existing.Login == req.Login {
		return ErrLoginExists
	}
	return ErrEmailExists
}
