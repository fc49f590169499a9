package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/auth"
	"userhub/internal/config"
)

type fakeDirectory struct {
	users      []auth.User
	totalPages int64

	gotParams auth.ListParams
	deleted   map[string]int64
}

func (f *fakeDirectory) FindByID(_ context.Context, id string) (*auth.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) FindAll(_ context.Context, params auth.ListParams) ([]auth.User, int64, error) {
	f.gotParams = params
	return f.users, f.totalPages, nil
}

func (f *fakeDirectory) Update(_ context.Context, id, email, password string) (*auth.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Email = email
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) Delete(_ context.Context, id string) (int64, error) {
	return f.deleted[id], nil
}

func newDirectoryServer(dir *fakeDirectory) (*Server, *fakeSessions) {
	sessions := &fakeSessions{bound: map[string]string{}}
	wf := &auth.Workflow{Sessions: sessions}
	return NewServer(config.Config{}, wf, dir, sessions), sessions
}

func getJSON(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func TestListUsersParsesParams(t *testing.T) {
	dir := &fakeDirectory{
		users:      []auth.User{{ID: "user-1", Email: "a@x.com", CreatedAt: time.Now()}},
		totalPages: 3,
	}
	s, _ := newDirectoryServer(dir)

	rr := getJSON(s, "/api/users?page=2&page_size=5&email=%25x%25&sort_by=email.desc&created_at[gte]=2024-01-01T00:00:00Z")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, int64(2), dir.gotParams.Page)
	assert.Equal(t, int64(5), dir.gotParams.PageSize)
	assert.Equal(t, "email.desc", dir.gotParams.SortBy)
	require.NotNil(t, dir.gotParams.Email)
	assert.Equal(t, "%x%", *dir.gotParams.Email)
	require.NotNil(t, dir.gotParams.CreatedAtGte)
	assert.Equal(t, 2024, dir.gotParams.CreatedAtGte.Year())
	assert.Nil(t, dir.gotParams.CreatedAtLte)

	body := decodeBody(t, rr)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(3), body["total_pages"])
	assert.NotContains(t, rr.Body.String(), "password_hash")
}

func TestListUsersEmptyPage(t *testing.T) {
	dir := &fakeDirectory{users: nil, totalPages: 1}
	s, _ := newDirectoryServer(dir)

	rr := getJSON(s, "/api/users?page=40")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestListUsersRejectsBadTimestamp(t *testing.T) {
	s, _ := newDirectoryServer(&fakeDirectory{})

	rr := getJSON(s, "/api/users?created_at[gte]=yesterday")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUserNotFound(t *testing.T) {
	s, _ := newDirectoryServer(&fakeDirectory{})

	rr := getJSON(s, "/api/users/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteUserWithSession(t *testing.T) {
	dir := &fakeDirectory{deleted: map[string]int64{"user-2": 1}}
	s, sessions := newDirectoryServer(dir)
	sessions.bound["sess-1"] = "user-1"

	req := httptest.NewRequest(http.MethodDelete, "/api/users/user-2", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "sess-1"})
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decodeBody(t, rr)["deleted"])

	req = httptest.NewRequest(http.MethodDelete, "/api/users/gone", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "sess-1"})
	rr = httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
