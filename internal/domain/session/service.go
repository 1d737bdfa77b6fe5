package session

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound is returned when no session matches the device and
	// timestamp, which also covers a rotated (reused) refresh token
	ErrSessionNotFound = errors.New("session not found")
	// ErrForbidden is returned when a device session belongs to another user
	ErrForbidden = errors.New("session belongs to another user")
)

// Service wraps the session store with authorization checks and
// error signaling
type Service interface {
	CreateSession(userID, deviceID, ip, title string, lastActiveDate time.Time) error
	FindByDeviceAndDate(deviceID string, issuedAt time.Time) (*Session, error)
	UpdateLastActiveDate(deviceID string, oldIat, newIat time.Time) error
	DeleteByDeviceAndDate(deviceID string, issuedAt time.Time) error
	ListForUser(userID string) ([]Session, error)
	TerminateOtherSessions(userID, keepDeviceID string) ([]string, error)
	TerminateDeviceSession(callerUserID, deviceID string) error
}

type service struct {
	repo      Repository
	tolerance time.Duration
}

// NewService creates a session Service. The tolerance window applies only to
// lookups; rotation updates and deletes compare timestamps exactly.
func NewService(repo Repository, tolerance time.Duration) Service {
	return &service{repo: repo, tolerance: tolerance}
}

// CreateSession persists one session row per login. It deliberately does not
// dedupe by device: a repeat login from the same device leaves the old row
// orphaned, unable to match any live token, until it expires.
func (s *service) CreateSession(userID, deviceID, ip, title string, lastActiveDate time.Time) error {
	return s.repo.Create(&Session{
		UserID:         userID,
		DeviceID:       deviceID,
		IP:             ip,
		Title:          title,
		LastActiveDate: lastActiveDate,
	})
}

// FindByDeviceAndDate returns ErrSessionNotFound when no row matches within
// tolerance; callers treat that as "session not found or token reused"
func (s *service) FindByDeviceAndDate(deviceID string, issuedAt time.Time) (*Session, error) {
	sess, err := s.repo.FindByDeviceAndDate(deviceID, issuedAt, s.tolerance)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// UpdateLastActiveDate rotates the session timestamp. A zero-row update
// means the old timestamp no longer matches: a concurrent refresh already
// rotated it.
func (s *service) UpdateLastActiveDate(deviceID string, oldIat, newIat time.Time) error {
	affected, err := s.repo.UpdateLastActiveDate(deviceID, oldIat, newIat)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *service) DeleteByDeviceAndDate(deviceID string, issuedAt time.Time) error {
	affected, err := s.repo.DeleteByDeviceAndDate(deviceID, issuedAt)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *service) ListForUser(userID string) ([]Session, error) {
	return s.repo.ListByUser(userID)
}

// TerminateOtherSessions deletes the caller's other sessions and returns the
// device IDs that were terminated so callers can revoke them
func (s *service) TerminateOtherSessions(userID, keepDeviceID string) ([]string, error) {
	sessions, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	var terminated []string
	for _, sess := range sessions {
		if sess.DeviceID != keepDeviceID {
			terminated = append(terminated, sess.DeviceID)
		}
	}

	if err := s.repo.DeleteAllExceptDevice(userID, keepDeviceID); err != nil {
		return nil, err
	}
	return terminated, nil
}

// TerminateDeviceSession deletes one named device's session after an
// ownership check
func (s *service) TerminateDeviceSession(callerUserID, deviceID string) error {
	sess, err := s.repo.FindByDevice(deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if sess.UserID != callerUserID {
		return ErrForbidden
	}

	_, err = s.repo.DeleteByDevice(deviceID)
	return err
}
