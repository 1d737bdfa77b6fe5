package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogger-platform/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminApp(repo *memRepo) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(repo))
	group := app.Group("/api/sa/users")
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Post("/", h.Create)
	group.Delete("/:id", h.Delete)
	return app
}

func adminPost(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/sa/users/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminCreateUser(t *testing.T) {
	repo := newMemRepo()
	app := adminApp(repo)

	resp, err := app.Test(adminPost(`{"login":"bob","email":"bob@example.com","password":"password123"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var view View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "bob", view.Login)
	assert.NotEmpty(t, view.ID)
	assert.NotEmpty(t, view.CreatedAt)
}

func TestAdminCreateUser_Validation(t *testing.T) {
	app := adminApp(newMemRepo())

	resp, err := app.Test(adminPost(`{"login":"toolongforsure","email":"not-an-email","password":"short"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		ErrorsMessages []struct {
			Field string `json:"field"`
		} `json:"errorsMessages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	fields := make([]string, 0, len(body.ErrorsMessages))
	for _, e := range body.ErrorsMessages {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"login", "email", "password"}, fields)
}

func TestAdminCreateUser_DuplicateLogin(t *testing.T) {
	repo := newMemRepo()
	repo.add(t, "bob", "bob@example.com")
	app := adminApp(repo)

	resp, err := app.Test(adminPost(`{"login":"bob","email":"new@example.com","password":"password123"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminListUsers(t *testing.T) {
	repo := newMemRepo()
	repo.add(t, "alice", "alice@example.com")
	repo.add(t, "bob", "bob@example.com")
	app := adminApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sa/users/?searchLoginTerm=ali", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page utils.Page[View]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.EqualValues(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice", page.Items[0].Login)
}

func TestAdminGetAndDeleteUser(t *testing.T) {
	repo := newMemRepo()
	u := repo.add(t, "alice", "alice@example.com")
	app := adminApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sa/users/"+u.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/sa/users/"+u.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/sa/users/"+u.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/sa/users/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
