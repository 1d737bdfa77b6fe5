package auth

import (
	"errors"
	"log/slog"
	"time"

	"blogger-platform/internal/domain/session"
	"blogger-platform/internal/domain/user"
	"blogger-platform/internal/notifications"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrLoginTaken is returned when registering with an existing login
	ErrLoginTaken = errors.New("user with same login already exists")
	// ErrEmailTaken is returned when registering with an existing email
	ErrEmailTaken = errors.New("user with same email already exists")
	// ErrInvalidConfirmationCode is returned for an unknown confirmation code
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	// ErrAlreadyConfirmed is returned when the email was already confirmed
	ErrAlreadyConfirmed = errors.New("user already confirmed")
	// ErrConfirmationExpired is returned for an expired confirmation code
	ErrConfirmationExpired = errors.New("confirmation code expired")
	// ErrEmailNotFound is returned when resending to an unknown email
	ErrEmailNotFound = errors.New("no user with such email")
)

// AuthService drives the end-to-end token protocol: login issuance,
// rotation-on-refresh with reuse detection, and logout
type AuthService interface {
	Login(loginOrEmail, password, ip, userAgent string) (*LoginResult, error)
	Refresh(oldRefreshToken string) (*LoginResult, error)
	Logout(refreshToken string) error
	Register(req RegisterRequest) error
	ConfirmRegistration(code string) error
	ResendConfirmationEmail(email string) error
	Me(userID string) (*user.MeView, error)
}

// Service handles authentication operations
type Service struct {
	users       user.Repository
	sessions    session.Service
	codec       *TokenCodec
	revocations RevocationStore
	mail        notifications.EmailSender
}

// NewService constructs a Service. The revocation store may be nil; the
// protocol works without it.
func NewService(users user.Repository, sessions session.Service, codec *TokenCodec, revocations RevocationStore, mail notifications.EmailSender) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		codec:       codec,
		revocations: revocations,
		mail:        mail,
	}
}

// Login resolves the user by login or email, verifies the password, issues
// a token pair bound to a fresh device ID and persists the session with the
// refresh token's issued-at as its last active date.
func (s *Service) Login(loginOrEmail, password, ip, userAgent string) (*LoginResult, error) {
	u, err := s.users.FindByLoginOrEmail(loginOrEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Debug("login rejected", "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive() {
		slog.Debug("login rejected", "reason", "user not active", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(password, u.PasswordHash) {
		slog.Debug("login rejected", "reason", "password mismatch", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	deviceID := uuid.NewString()

	accessToken, err := s.codec.IssueAccessToken(u.ID.String(), u.Login, deviceID)
	if err != nil {
		return nil, err
	}

	refreshToken, issuedAt, err := s.codec.IssueRefreshToken(u.ID.String(), deviceID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.CreateSession(u.ID.String(), deviceID, ip, userAgent, issuedAt); err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", u.ID, "device_id", deviceID, "ip", ip)

	return &LoginResult{
		Pair:       TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
		RefreshTTL: s.codec.RefreshTTL(),
	}, nil
}

// Refresh rotates the refresh token. The session lookup by device and
// issued-at is the reuse-detection gate, and the conditional timestamp
// update makes rotation race-safe: of two concurrent refreshes carrying the
// same token, exactly one wins.
func (s *Service) Refresh(oldRefreshToken string) (*LoginResult, error) {
	claims, err := s.codec.VerifyRefresh(oldRefreshToken)
	if err != nil {
		slog.Debug("refresh rejected", "reason", "token verification failed")
		return nil, ErrInvalidToken
	}

	if deviceRevoked(s.revocations, claims.DeviceID) {
		slog.Debug("refresh rejected", "reason", "device revoked", "device_id", claims.DeviceID)
		return nil, ErrSessionMismatch
	}

	oldIat := claims.IssuedAt.Time
	if _, err := s.sessions.FindByDeviceAndDate(claims.DeviceID, oldIat); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			slog.Warn("refresh rejected", "reason", "no session for issued-at, token reused or session gone", "device_id", claims.DeviceID)
			return nil, ErrSessionMismatch
		}
		return nil, err
	}

	u, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("refresh rejected", "reason", "user no longer exists", "user_id", claims.UserID)
			return nil, ErrSessionMismatch
		}
		return nil, err
	}

	accessToken, err := s.codec.IssueAccessToken(u.ID.String(), u.Login, claims.DeviceID)
	if err != nil {
		return nil, err
	}

	refreshToken, newIat, err := s.codec.IssueRefreshToken(u.ID.String(), claims.DeviceID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.UpdateLastActiveDate(claims.DeviceID, oldIat, newIat); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			slog.Warn("refresh rejected", "reason", "lost rotation race", "device_id", claims.DeviceID)
			return nil, ErrSessionMismatch
		}
		return nil, err
	}

	return &LoginResult{
		Pair:       TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
		RefreshTTL: s.codec.RefreshTTL(),
	}, nil
}

// Logout tears down the session matching the token's device and issued-at.
// A second logout with the same token finds no row and fails.
func (s *Service) Logout(refreshToken string) error {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		slog.Debug("logout rejected", "reason", "token verification failed")
		return ErrInvalidToken
	}

	if err := s.sessions.DeleteByDeviceAndDate(claims.DeviceID, claims.IssuedAt.Time); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			slog.Debug("logout rejected", "reason", "session already gone", "device_id", claims.DeviceID)
			return ErrSessionMismatch
		}
		return err
	}

	// outstanding access tokens for this device die with the session
	revokeDevice(s.revocations, claims.DeviceID, s.codec.AccessTTL())

	slog.Info("user logged out", "user_id", claims.UserID, "device_id", claims.DeviceID)
	return nil
}

// Register creates a new unconfirmed user and sends a confirmation code.
// Mail delivery failures are logged, never surfaced.
func (s *Service) Register(req RegisterRequest) error {
	if existing, err := s.users.FindByLoginOrEmail(req.Login); err == nil {
		if existing.Login == req.Login {
			return ErrLoginTaken
		}
		return ErrEmailTaken
	}
	if existing, err := s.users.FindByLoginOrEmail(req.Email); err == nil {
		if existing.Email == req.Email {
			return ErrEmailTaken
		}
		return ErrLoginTaken
	}

	passwordHash, err := user.HashPassword(req.Password)
	if err != nil {
		return err
	}

	code := uuid.NewString()
	expiration := time.Now().Add(24 * time.Hour)

	newUser := &user.User{
		Login:                      req.Login,
		Email:                      req.Email,
		PasswordHash:               passwordHash,
		IsEmailConfirmed:           false,
		DeletionStatus:             user.DeletionStatusActive,
		ConfirmationCode:           code,
		ConfirmationCodeExpiration: &expiration,
	}

	if err := s.users.Create(newUser); err != nil {
		// a concurrent registration can slip between the lookups and the
		// insert; the unique constraint reports it as a duplicated key
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.users.FindByLogin(req.Login); lookupErr == nil {
				return ErrLoginTaken
			}
			return ErrEmailTaken
		}
		return err
	}

	if err := s.mail.SendConfirmationEmail(newUser.Email, code); err != nil {
		slog.Error("failed to send confirmation email", "error", err, "email", newUser.Email)
	}

	return nil
}

// ConfirmRegistration marks the user's email as confirmed
func (s *Service) ConfirmRegistration(code string) error {
	u, err := s.users.FindByConfirmationCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidConfirmationCode
		}
		return err
	}

	if u.IsEmailConfirmed {
		return ErrAlreadyConfirmed
	}

	if u.ConfirmationCodeExpiration != nil && u.ConfirmationCodeExpiration.Before(time.Now()) {
		return ErrConfirmationExpired
	}

	return s.users.ConfirmEmail(u.ID.String())
}

// ResendConfirmationEmail issues a fresh confirmation code
func (s *Service) ResendConfirmationEmail(email string) error {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	if u.IsEmailConfirmed {
		return ErrAlreadyConfirmed
	}

	code := uuid.NewString()
	expiration := time.Now().Add(24 * time.Hour)

	if err := s.users.UpdateConfirmationCode(u.ID.String(), code, expiration); err != nil {
		return err
	}

	if err := s.mail.SendConfirmationEmail(u.Email, code); err != nil {
		slog.Error("failed to send confirmation email", "error", err, "email", u.Email)
	}

	return nil
}

// Me returns the current user's view
func (s *Service) Me(userID string) (*user.MeView, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return u.ToMeView(), nil
}
