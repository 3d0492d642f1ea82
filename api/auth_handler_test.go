package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/models"
)

func TestLoginReturnsTokensAndUser(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Username: "admin",
		Password: testAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body LoginResponse
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.Token)
	assert.NotEmpty(t, body.RefreshToken)
	assert.Equal(t, s.admin.ID, body.User.ID)
	assert.Equal(t, "admin", body.User.Username)
	assert.Equal(t, models.RoleAdmin, body.User.Role)

	// Decoded access claims match the stored user.
	claims, err := s.tokens.VerifyAccess(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Refresh token type claim is "refresh".
	refreshClaims, err := s.tokens.VerifyRefresh(body.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	s := newTestServer(t)

	unknownUser := s.request(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Username: "nobody",
		Password: "whatever",
	}, "")
	wrongPassword := s.request(t, http.MethodPost, "/api/auth/login", LoginRequest{
		Username: "admin",
		Password: "wrong",
	}, "")

	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	// Same generic message either way, no username enumeration.
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
}

func TestLoginValidatesBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "password", body["field"])
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	s := newTestServer(t)

	refreshToken, err := s.tokens.IssueRefreshToken(s.admin)
	require.NoError(t, err)

	rec := s.request(t, http.MethodPost, "/api/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)

	claims, err := s.tokens.VerifyAccess(body["token"])
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	s := newTestServer(t)

	// A validly signed access token must not mint new access tokens.
	rec := s.request(t, http.MethodPost, "/api/auth/refresh", RefreshRequest{
		RefreshToken: s.adminToken(t),
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.request(t, http.MethodGet, "/api/auth/me", nil, s.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User models.PublicUser `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, s.admin.ID, body.User.ID)
}

func TestVerifyEchoesClaims(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodGet, "/api/auth/verify", nil, s.viewerToken(t))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Valid bool              `json:"valid"`
		User  models.PublicUser `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Valid)
	assert.Equal(t, "viewer", body.User.Username)
}

func TestLogoutIsStateless(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGuardRejectsNonAdmin(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "A",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
	}, s.viewerToken(t))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminGuardRejectsDeletedUser(t *testing.T) {
	s := newTestServer(t)

	// A validly signed token for a user id that has no stored row: the
	// guard re-reads the record instead of trusting the token's role.
	ghost := models.User{ID: 999, Username: "ghost", Role: models.RoleAdmin}
	token, err := s.tokens.IssueAccessToken(ghost)
	require.NoError(t, err)

	rec := s.request(t, http.MethodPost, "/api/projects", CreateProjectRequest{
		Title:        "A",
		Description:  "d",
		Technologies: "x",
		Category:     "c",
	}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExpiredTokenGetsDistinctMessage(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodGet, "/api/auth/me", nil, "garbage.token.here")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "malformed")
}
