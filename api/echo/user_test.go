package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/unitrack/unitrack/api/echo"
	"github.com/unitrack/unitrack/core/user"
	"github.com/unitrack/unitrack/storage/database/blobdb"
)

func TestUserAPI_login(t *testing.T) {
	app := setup(t)

	rec := app.do(httpTest{
		method: http.MethodPost, path: "/api/users/login",
		body: marchallObj(t, user.LoginRequest{Email: "admin@uni.edu", Password: blobdb.DemoPassword}),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, user.RoleAdmin, resp.Role)

	// the minted token is accepted on authed endpoints
	rec = app.do(httpTest{path: "/api/users/roles", token: resp.Token})
	assert.Equal(t, http.StatusOK, rec.Code)

	tests := []httpTest{
		{
			name: "wrong password", method: http.MethodPost, path: "/api/users/login",
			body:     marchallObj(t, user.LoginRequest{Email: "admin@uni.edu", Password: "nope-nope"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/api/users/login",
			body:     marchallObj(t, user.LoginRequest{Email: "ghost@uni.edu", Password: blobdb.DemoPassword}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "validation", method: http.MethodPost, path: "/api/users/login",
			body:     marchallObj(t, user.LoginRequest{Email: "not-an-email"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}
}

func TestUserAPI_query(t *testing.T) {
	app := setup(t)
	adminToken := app.getToken(t, "admin@uni.edu")

	tests := []httpTest{
		{
			name: "auth required", path: "/api/users",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "admin required", path: "/api/users", token: app.getToken(t, "john@uni.edu"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "supervisors cannot manage users either", path: "/api/users", token: app.getToken(t, "smith@uni.edu"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "get all", path: "/api/users", token: adminToken, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(tt))
		})
	}

	rec := app.do(httpTest{path: "/api/users", token: adminToken})
	var users []user.User
	decodeBody(t, rec, &users)
	assert.Len(t, users, 5)
}

func TestUserAPI_create(t *testing.T) {
	app := setup(t)
	adminToken := app.getToken(t, "admin@uni.edu")

	body := marchallObj(t, user.NewUser{
		Name:     "New Student",
		Email:    "new@uni.edu",
		Role:     user.RoleStudent,
		Password: "long-enough-pass",
	})
	rec := app.do(httpTest{method: http.MethodPost, path: "/api/users", token: adminToken, body: body})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var usr user.User
	decodeBody(t, rec, &usr)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)

	// duplicate email
	rec = app.do(httpTest{method: http.MethodPost, path: "/api/users", token: adminToken, body: body})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// students cannot create accounts
	rec = app.do(httpTest{method: http.MethodPost, path: "/api/users", token: app.getToken(t, "john@uni.edu"), body: body})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserAPI_roles(t *testing.T) {
	app := setup(t)

	tt := httpTest{
		path: "/api/users/roles", token: app.getToken(t, "john@uni.edu"),
		wantCode: http.StatusOK, wantData: marchallObj(t, user.AllRoles),
	}
	checkCodeAndData(t, tt, app.do(tt))
}
