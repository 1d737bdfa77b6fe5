package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memRepo mirrors the conditional-statement semantics of the SQL repository
type memRepo struct {
	mu       sync.Mutex
	sessions []*Session
}

func (m *memRepo) Create(sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	m.sessions = append(m.sessions, sess)
	return nil
}

func (m *memRepo) FindByDeviceAndDate(deviceID string, at time.Time, tolerance time.Duration) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lower, upper := at.Add(-tolerance), at.Add(tolerance)
	for _, s := range m.sessions {
		if s.DeviceID == deviceID && !s.LastActiveDate.Before(lower) && !s.LastActiveDate.After(upper) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) FindByDevice(deviceID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.DeviceID == deviceID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) UpdateLastActiveDate(deviceID string, old, new time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var affected int64
	for _, s := range m.sessions {
		if s.DeviceID == deviceID && s.LastActiveDate.Equal(old) {
			s.LastActiveDate = new
			affected++
		}
	}
	return affected, nil
}

func (m *memRepo) DeleteByDeviceAndDate(deviceID string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*Session
	var affected int64
	for _, s := range m.sessions {
		if s.DeviceID == deviceID && s.LastActiveDate.Equal(at) {
			affected++
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	return affected, nil
}

func (m *memRepo) ListByUser(userID string) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Session
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteAllExceptDevice(userID, keepDeviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.DeviceID != keepDeviceID {
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	return nil
}

func (m *memRepo) DeleteByDevice(deviceID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*Session
	var affected int64
	for _, s := range m.sessions {
		if s.DeviceID == deviceID {
			affected++
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	return affected, nil
}

func newFixture(t *testing.T) (Service, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	return NewService(repo, time.Second), repo
}

func TestFindByDeviceAndDate_ToleranceWindow(t *testing.T) {
	svc, _ := newFixture(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession("user-1", "device-1", "10.0.0.1", "Firefox", at))

	// a lookup slightly off the stored date still matches
	found, err := svc.FindByDeviceAndDate("device-1", at.Add(500*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, "device-1", found.DeviceID)

	// outside the window it does not
	_, err = svc.FindByDeviceAndDate("device-1", at.Add(1500*time.Millisecond))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.FindByDeviceAndDate("other-device", at)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateLastActiveDate_RequiresExactMatch(t *testing.T) {
	svc, _ := newFixture(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession("user-1", "device-1", "", "", at))

	// no tolerance on rotation: a near-miss timestamp updates nothing
	err := svc.UpdateLastActiveDate("device-1", at.Add(500*time.Millisecond), at.Add(time.Minute))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, svc.UpdateLastActiveDate("device-1", at, at.Add(time.Minute)))

	// the old timestamp is spent
	err = svc.UpdateLastActiveDate("device-1", at, at.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateLastActiveDate_ConcurrentRotationHasOneWinner(t *testing.T) {
	svc, _ := newFixture(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession("user-1", "device-1", "", "", at))

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.UpdateLastActiveDate("device-1", at, at.Add(time.Duration(i+1)*time.Second))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSessionNotFound)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent rotation may succeed")
}

func TestDeleteByDeviceAndDate_RequiresExactMatch(t *testing.T) {
	svc, repo := newFixture(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession("user-1", "device-1", "", "", at))

	err := svc.DeleteByDeviceAndDate("device-1", at.Add(500*time.Millisecond))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, svc.DeleteByDeviceAndDate("device-1", at))
	assert.Empty(t, repo.sessions)

	// idempotence boundary: the second delete reports the miss
	err = svc.DeleteByDeviceAndDate("device-1", at)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTerminateOtherSessions_KeepsCallerDevice(t *testing.T) {
	svc, _ := newFixture(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession("user-1", "device-1", "", "", at))
	require.NoError(t, svc.CreateSession("user-1", "device-2", "", "", at.Add(time.Minute)))
	require.NoError(t, svc.CreateSession("user-1", "device-3", "", "", at.Add(2*time.Minute)))
	require.NoError(t, svc.CreateSession("user-2", "device-4", "", "", at))

	terminated, err := svc.TerminateOtherSessions("user-1", "device-2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"device-1", "device-3"}, terminated)

	mine, err := svc.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "device-2", mine[0].DeviceID)

	// other users' sessions are untouched
	theirs, err := svc.ListForUser("user-2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestTerminateDeviceSession(t *testing.T) {
	svc, repo := newFixture(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.CreateSession("user-1", "device-1", "", "", at))
	require.NoError(t, svc.CreateSession("user-2", "device-2", "", "", at))

	err := svc.TerminateDeviceSession("user-1", "no-such-device")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// another user's device must not be terminable
	err = svc.TerminateDeviceSession("user-1", "device-2")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, repo.sessions, 2)

	require.NoError(t, svc.TerminateDeviceSession("user-1", "device-1"))
	assert.Len(t, repo.sessions, 1)
}
