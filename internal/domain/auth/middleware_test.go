package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogger-platform/internal/domain/session"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEchoApp(codec *TokenCodec, revocations RevocationStore) *fiber.App {
	app := fiber.New()
	app.Get("/protected", BearerMiddleware(codec, revocations), func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		return c.JSON(fiber.Map{"userId": identity.UserID, "login": identity.Login})
	})
	app.Get("/optional", OptionalBearerMiddleware(codec, revocations), func(c *fiber.Ctx) error {
		if identity := GetIdentity(c); identity != nil {
			return c.JSON(fiber.Map{"login": identity.Login})
		}
		return c.JSON(fiber.Map{"login": ""})
	})
	return app
}

func TestBearerMiddleware_ValidToken(t *testing.T) {
	codec := testCodec(t)
	app := identityEchoApp(codec, nil)

	token, err := codec.IssueAccessToken("user-1", "alice", "device-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerMiddleware_RevokedDevice(t *testing.T) {
	codec := testCodec(t)
	revocations := newFakeRevocationStore()
	app := identityEchoApp(codec, revocations)

	token, err := codec.IssueAccessToken("user-1", "alice", "device-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// the device session dies; the still-valid token dies with it
	revocations.revoke(t, "device-1")

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBearerMiddleware_Rejections(t *testing.T) {
	codec := testCodec(t)
	app := identityEchoApp(codec, nil)

	refreshToken, _, err := codec.IssueRefreshToken("user-1", "device-1")
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":          "",
		"not bearer":              "Basic abc",
		"empty token":             "Bearer ",
		"garbage token":           "Bearer not-a-jwt",
		"refresh token as bearer": "Bearer " + refreshToken,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestOptionalBearerMiddleware_AnonymousPassThrough(t *testing.T) {
	codec := testCodec(t)
	app := identityEchoApp(codec, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/optional", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// an invalid token also passes, just without identity
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalBearerMiddleware_RevokedDeviceIsAnonymous(t *testing.T) {
	codec := testCodec(t)
	revocations := newFakeRevocationStore()
	revocations.revoke(t, "device-1")
	app := identityEchoApp(codec, revocations)

	token, err := codec.IssueAccessToken("user-1", "alice", "device-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Login string `json:"login"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Login)
}

func TestBasicAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", BasicAuthMiddleware("admin", "qwerty"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cases := map[string]struct {
		header string
		status int
	}{
		"valid credentials":   {"Basic " + base64.StdEncoding.EncodeToString([]byte("admin:qwerty")), http.StatusOK},
		"wrong password":      {"Basic " + base64.StdEncoding.EncodeToString([]byte("admin:wrong")), http.StatusUnauthorized},
		"wrong login":         {"Basic " + base64.StdEncoding.EncodeToString([]byte("root:qwerty")), http.StatusUnauthorized},
		"missing header":      {"", http.StatusUnauthorized},
		"not basic":           {"Bearer abc", http.StatusUnauthorized},
		"undecodable payload": {"Basic %%%", http.StatusUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func refreshGuardApp(codec *TokenCodec, sessions session.Service) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", RefreshGuard(codec, sessions), func(c *fiber.Ctx) error {
		claims := GetRefreshClaims(c)
		return c.JSON(fiber.Map{"deviceId": claims.DeviceID})
	})
	return app
}

func TestRefreshGuard_MatchingSession(t *testing.T) {
	codec := testCodec(t)
	repo := &fakeSessionRepo{}
	sessions := session.NewService(repo, time.Second)
	app := refreshGuardApp(codec, sessions)

	token, issuedAt, err := codec.IssueRefreshToken("user-1", "device-1")
	require.NoError(t, err)
	require.NoError(t, sessions.CreateSession("user-1", "device-1", "", "", issuedAt))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshGuard_Rejections(t *testing.T) {
	codec := testCodec(t)
	repo := &fakeSessionRepo{}
	sessions := session.NewService(repo, time.Second)
	app := refreshGuardApp(codec, sessions)

	t.Run("no cookie", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("forged cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "forged"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rotated token", func(t *testing.T) {
		token, issuedAt, err := codec.IssueRefreshToken("user-1", "device-1")
		require.NoError(t, err)
		// session exists but its date moved on, as after a rotation
		require.NoError(t, sessions.CreateSession("user-1", "device-1", "", "", issuedAt.Add(10*time.Second)))

		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: token})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
