package user

import (
	"strings"
	"time"

	"blogger-platform/internal/utils"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"login":     "login",
	"email":     "email",
}

// Repository interface for user operations
type Repository interface {
	Create(user *User) error
	FindByID(id string) (*User, error)
	FindByLogin(login string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByLoginOrEmail(loginOrEmail string) (*User, error)
	FindByConfirmationCode(code string) (*User, error)
	ConfirmEmail(id string) error
	UpdateConfirmationCode(id, code string, expiration time.Time) error
	List(query utils.PageQuery, searchLogin, searchEmail string) ([]User, int64, error)
	SoftDelete(id string) (int64, error)
}

// repository struct for user operations
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create creates a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// FindByID gets a user by ID
func (r *repository) FindByID(id string) (*User, error) {
	var user User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin gets a user by login
func (r *repository) FindByLogin(login string) (*User, error) {
	var user User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail gets a user by email
func (r *repository) FindByEmail(email string) (*User, error) {
	var user User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLoginOrEmail gets a user matching either login or email
func (r *repository) FindByLoginOrEmail(loginOrEmail string) (*User, error) {
	var user User
	if err := r.db.Where("login = ? OR email = ?", loginOrEmail, loginOrEmail).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByConfirmationCode gets a user by their registration confirmation code
func (r *repository) FindByConfirmationCode(code string) (*User, error) {
	var user User
	if err := r.db.Where("confirmation_code = ?", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ConfirmEmail marks a user's email as confirmed
func (r *repository) ConfirmEmail(id string) error {
	return r.db.Model(&User{}).
		Where("id = ?", id).
		Update("is_email_confirmed", true).Error
}

// UpdateConfirmationCode replaces the confirmation code and its expiration
func (r *repository) UpdateConfirmationCode(id, code string, expiration time.Time) error {
	return r.db.Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"confirmation_code":            code,
			"confirmation_code_expiration": expiration,
		}).Error
}

// List returns a page of active users, optionally narrowed by
// case-insensitive login and email substring filters
func (r *repository) List(query utils.PageQuery, searchLogin, searchEmail string) ([]User, int64, error) {
	q := r.db.Model(&User{}).Where("deletion_status = ?", DeletionStatusActive)
	if searchLogin != "" {
		q = q.Where("LOWER(login) LIKE ?", "%"+strings.ToLower(searchLogin)+"%")
	}
	if searchEmail != "" {
		q = q.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(searchEmail)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := q.Order(query.OrderClause(sortColumns, "created_at")).
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SoftDelete marks a user deleted without removing the row
func (r *repository) SoftDelete(id string) (int64, error) {
	res := r.db.Model(&User{}).
		Where("id = ? AND deletion_status = ?", id, DeletionStatusActive).
		Update("deletion_status", DeletionStatusDeleted)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
