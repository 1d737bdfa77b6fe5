package user

import (
	"strings"
	"sync"
	"testing"
	"time"

	"blogger-platform/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memRepo is an in-memory Repository. createHook, when set, runs before an
// insert; tests use it to interleave a competing write.
type memRepo struct {
	mu         sync.Mutex
	users      map[string]*User
	createHook func() error
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*User)}
}

func (m *memRepo) Create(u *User) error {
	if m.createHook != nil {
		if err := m.createHook(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.users[u.ID.String()] = u
	return nil
}

func (m *memRepo) FindByID(id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) FindByLogin(login string) (*User, error) {
	return m.findBy(func(u *User) bool { return u.Login == login })
}

func (m *memRepo) FindByEmail(email string) (*User, error) {
	return m.findBy(func(u *User) bool { return u.Email == email })
}

func (m *memRepo) FindByLoginOrEmail(loginOrEmail string) (*User, error) {
	return m.findBy(func(u *User) bool {
		return u.Login == loginOrEmail || u.Email == loginOrEmail
	})
}

func (m *memRepo) FindByConfirmationCode(code string) (*User, error) {
	return m.findBy(func(u *User) bool { return u.ConfirmationCode == code })
}

func (m *memRepo) ConfirmEmail(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsEmailConfirmed = true
	return nil
}

func (m *memRepo) UpdateConfirmationCode(id, code string, expiration time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.ConfirmationCode = code
	u.ConfirmationCodeExpiration = &expiration
	return nil
}

func (m *memRepo) List(query utils.PageQuery, searchLogin, searchEmail string) ([]User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []User
	for _, u := range m.users {
		if u.DeletionStatus != DeletionStatusActive {
			continue
		}
		if searchLogin != "" && !strings.Contains(strings.ToLower(u.Login), strings.ToLower(searchLogin)) {
			continue
		}
		if searchEmail != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(searchEmail)) {
			continue
		}
		matched = append(matched, *u)
	}

	total := int64(len(matched))
	offset := query.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + query.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *memRepo) SoftDelete(id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.DeletionStatus != DeletionStatusActive {
		return 0, nil
	}
	u.DeletionStatus = DeletionStatusDeleted
	return 1, nil
}

func (m *memRepo) findBy(match func(*User) bool) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) add(t *testing.T, login, email string) *User {
	t.Helper()
	u := &User{
		Login:            login,
		Email:            email,
		PasswordHash:     "x",
		IsEmailConfirmed: true,
		DeletionStatus:   DeletionStatusActive,
	}
	require.NoError(t, m.Create(u))
	return u
}

func TestCreateUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	view, err := svc.CreateUser(CreateRequest{
		Login: "bob", Email: "bob@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "bob", view.Login)
	assert.Equal(t, "bob@example.com", view.Email)
	assert.NotEmpty(t, view.CreatedAt)

	u, err := repo.FindByLogin("bob")
	require.NoError(t, err)
	assert.False(t, u.IsEmailConfirmed)
	assert.NotEmpty(t, u.ConfirmationCode)
	assert.True(t, VerifyPassword("password123", u.PasswordHash))
}

func TestCreateUser_Duplicates(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	repo.add(t, "alice", "alice@example.com")

	_, err := svc.CreateUser(CreateRequest{
		Login: "alice", Email: "new@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrLoginExists)

	_, err = svc.CreateUser(CreateRequest{
		Login: "newlogin", Email: "alice@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUser_DuplicateKeyFromStore(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	// the competing row lands after the lookups, so only the constraint sees
	// the conflict
	repo.createHook = func() error {
		repo.createHook = nil
		repo.add(t, "bob", "other@example.com")
		return gorm.ErrDuplicatedKey
	}

	_, err := svc.CreateUser(CreateRequest{
		Login: "bob", Email: "bob@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrLoginExists)
}

func TestGetUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	u := repo.add(t, "alice", "alice@example.com")

	view, err := svc.GetUser(u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Login)

	_, err = svc.GetUser(uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)

	u.DeletionStatus = DeletionStatusDeleted
	_, err = svc.GetUser(u.ID.String())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers_SearchTerms(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	repo.add(t, "alice", "alice@example.com")
	repo.add(t, "alina", "alina@other.org")
	repo.add(t, "bob", "bob@example.com")

	query := utils.PageQuery{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: "desc"}

	page, err := svc.ListUsers(query, "ali", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)

	page, err = svc.ListUsers(query, "", "example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalCount)

	page, err = svc.ListUsers(query, "ali", "example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice", page.Items[0].Login)
}

func TestDeleteUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	u := repo.add(t, "alice", "alice@example.com")

	require.NoError(t, svc.DeleteUser(u.ID.String()))

	// gone from the admin surface and from repeat deletes
	_, err := svc.GetUser(u.ID.String())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(u.ID.String()), ErrUserNotFound)
}
