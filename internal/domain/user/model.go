package user

import (
	"time"

	"blogger-platform/internal/database"
	"github.com/google/uuid"
)

// DeletionStatus marks soft-deleted users
type DeletionStatus string

const (
	DeletionStatusActive  DeletionStatus = "active"
	DeletionStatusDeleted DeletionStatus = "deleted"
)

type User struct {
	database.BaseModel

	Login            string         `gorm:"column:login;unique;not null"`
	Email            string         `gorm:"column:email;unique;not null"`
	PasswordHash     string         `gorm:"column:password_hash;not null"`
	IsEmailConfirmed bool           `gorm:"column:is_email_confirmed;default:false"`
	DeletionStatus   DeletionStatus `gorm:"column:deletion_status;type:text;default:active"`

	ConfirmationCode           string     `gorm:"column:confirmation_code"`
	ConfirmationCodeExpiration *time.Time `gorm:"column:confirmation_code_expiration"`
}

func (User) TableName() string {
	return "users"
}

// IsActive reports whether the user may authenticate
func (u *User) IsActive() bool {
	return u.DeletionStatus == DeletionStatusActive
}

// MeView is the payload returned by the "me" endpoint
type MeView struct {
	Login  string    `json:"login"`
	Email  string    `json:"email"`
	UserID uuid.UUID `json:"userId"`
}

// ToMeView converts a User to its MeView
func (u *User) ToMeView() *MeView {
	return &MeView{
		Login:  u.Login,
		Email:  u.Email,
		UserID: u.ID,
	}
}

// View is the payload returned by the super-admin endpoints
type View struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// ToView converts a User to its admin View
func (u *User) ToView() View {
	return View{
		ID:        u.ID.String(),
		Login:     u.Login,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateRequest is the super-admin create-user payload
type CreateRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
