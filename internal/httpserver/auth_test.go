package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/kids_shop/internal/transport"
)

func TestRegister_ReturnsToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerUser("alice@x.com", "pw123456")

	rec := env.do(http.MethodGet, "/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@x.com", resp.User.Email)
	assert.Equal(t, "Test User", resp.User.Name)
	assert.False(t, resp.User.IsAdmin)
	assert.NotZero(t, resp.User.ID)
	assert.False(t, resp.User.CreatedAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.registerUser("alice@x.com", "pw123456")

	rec := env.do(http.MethodPost, "/register", transport.RegisterRequest{
		Email:    "alice@x.com",
		Password: "other-pw",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/register", transport.RegisterRequest{Email: "a@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/register", transport.RegisterRequest{Password: "pw123456"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.registerUser("alice@x.com", "pw123456")

	rec := env.do(http.MethodPost, "/login", transport.LoginRequest{
		Email:    "alice@x.com",
		Password: "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	rec = env.do(http.MethodPost, "/login", transport.LoginRequest{
		Email:    "alice@x.com",
		Password: "wrong-pw",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/me", nil, "not-a-valid-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
