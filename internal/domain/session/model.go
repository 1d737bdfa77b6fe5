package session

import (
	"time"

	"blogger-platform/internal/database"
)

// Session binds a user and a device to the issuance time of the currently
// valid refresh token. LastActiveDate doubles as the rotation key: a refresh
// token whose issued-at no longer matches it has already been rotated.
type Session struct {
	database.BaseModel

	UserID   string `gorm:"column:user_id;type:uuid;not null;index"`
	DeviceID string `gorm:"column:device_id;type:uuid;not null;index"`
	IP       string `gorm:"column:ip;type:text"`
	Title    string `gorm:"column:title;type:text"` // user agent at login

	LastActiveDate time.Time `gorm:"column:last_active_date;not null"`
}

func (Session) TableName() string {
	return "sessions"
}

// DeviceView is the payload returned by the device enumeration endpoint
type DeviceView struct {
	IP             string `json:"ip"`
	Title          string `json:"title"`
	LastActiveDate string `json:"lastActiveDate"`
	DeviceID       string `json:"deviceId"`
}

// ToDeviceView converts a Session to its DeviceView
func (s *Session) ToDeviceView() DeviceView {
	return DeviceView{
		IP:             s.IP,
		Title:          s.Title,
		LastActiveDate: s.LastActiveDate.UTC().Format(time.RFC3339),
		DeviceID:       s.DeviceID,
	}
}
