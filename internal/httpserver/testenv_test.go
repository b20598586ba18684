package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
	"github.com/mvolkova/kids_shop/internal/service"
	"github.com/mvolkova/kids_shop/internal/transport"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.WishlistItem{}))

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: testSecret}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	wishlistSvc := &service.WishlistService{Repo: gormRepo}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:     &AuthHTTP{Svc: authSvc},
		CatalogHandler:  &CatalogHTTP{Svc: catalogSvc},
		WishlistHandler: &WishlistHTTP{Svc: wishlistSvc},
		JWTSecret:       testSecret,
	})

	return &testEnv{T: t, E: e, Repo: gormRepo}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) registerUser(email, password string) string {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/register", transport.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: password,
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	var resp transport.TokenResponse
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

// registerAdmin promotes a fresh user directly in the store and logs
// in again so the token carries the admin claim.
func (env *testEnv) registerAdmin(email, password string) string {
	env.T.Helper()

	env.registerUser(email, password)
	err := env.Repo.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("is_admin", true).Error
	require.NoError(env.T, err)

	rec := env.do(http.MethodPost, "/login", transport.LoginRequest{Email: email, Password: password}, "")
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	var resp transport.TokenResponse
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (env *testEnv) createProduct(adminToken string, req transport.ProductRequest) uint {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/admin/products", req, adminToken)
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var resp transport.IDResponse
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(env.T, resp.ID)
	return resp.ID
}
