package session

import (
	"time"

	"gorm.io/gorm"
)

// Repository is the storage layer for sessions. It carries no business
// rules; the timestamp-qualified update and delete are single conditional
// statements so two concurrent refreshes of the same token can never both
// succeed.
type Repository interface {
	Create(sess *Session) error
	FindByDeviceAndDate(deviceID string, at time.Time, tolerance time.Duration) (*Session, error)
	FindByDevice(deviceID string) (*Session, error)
	UpdateLastActiveDate(deviceID string, old, new time.Time) (int64, error)
	DeleteByDeviceAndDate(deviceID string, at time.Time) (int64, error)
	ListByUser(userID string) ([]Session, error)
	DeleteAllExceptDevice(userID, keepDeviceID string) error
	DeleteByDevice(deviceID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(sess *Session) error {
	return r.db.Create(sess).Error
}

// FindByDeviceAndDate matches on device plus last_active_date within a small
// symmetric window around the target, absorbing sub-second truncation
// between token signing and storage.
func (r *repository) FindByDeviceAndDate(deviceID string, at time.Time, tolerance time.Duration) (*Session, error) {
	var sess Session
	lower := at.Add(-tolerance)
	upper := at.Add(tolerance)
	err := r.db.Where("device_id = ? AND last_active_date BETWEEN ? AND ?", deviceID, lower, upper).
		First(&sess).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *repository) FindByDevice(deviceID string) (*Session, error) {
	var sess Session
	if err := r.db.Where("device_id = ?", deviceID).First(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// UpdateLastActiveDate is the rotation compare-and-swap: it affects exactly
// one row while the old timestamp still matches, zero otherwise.
func (r *repository) UpdateLastActiveDate(deviceID string, old, new time.Time) (int64, error) {
	res := r.db.Model(&Session{}).
		Where("device_id = ? AND last_active_date = ?", deviceID, old).
		Update("last_active_date", new)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) DeleteByDeviceAndDate(deviceID string, at time.Time) (int64, error) {
	res := r.db.Where("device_id = ? AND last_active_date = ?", deviceID, at).
		Delete(&Session{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) ListByUser(userID string) ([]Session, error) {
	var sessions []Session
	err := r.db.Where("user_id = ?", userID).
		Order("last_active_date DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) DeleteAllExceptDevice(userID, keepDeviceID string) error {
	return r.db.Where("user_id = ? AND device_id <> ?", userID, keepDeviceID).
		Delete(&Session{}).Error
}

// DeleteByDevice has no built-in authorization; callers must verify
// ownership first.
func (r *repository) DeleteByDevice(deviceID string) (int64, error) {
	res := r.db.Where("device_id = ?", deviceID).Delete(&Session{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
