package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
	"github.com/mvolkova/kids_shop/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.WishlistItem{}))
	return &repo.GormRepo{DB: db}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:      newTestRepo(t),
		JWTSecret: testSecret,
	}
}

func TestAuthService_RegisterThenLogin_SameIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tokenA, err := svc.Register(ctx, "Alice", "alice@x.com", "pw123456")
	require.NoError(t, err)
	tokenB, err := svc.Login(ctx, "alice@x.com", "pw123456")
	require.NoError(t, err)

	claimsA, err := tokens.ClaimsFromToken(tokenA, testSecret)
	require.NoError(t, err)
	claimsB, err := tokens.ClaimsFromToken(tokenB, testSecret)
	require.NoError(t, err)

	idA, err := claimsA.UserID()
	require.NoError(t, err)
	idB, err := claimsB.UserID()
	require.NoError(t, err)

	assert.Equal(t, idA, idB)
	assert.False(t, claimsA.IsAdmin)
	assert.False(t, claimsB.IsAdmin)
}

func TestAuthService_Register_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@x.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@x.com", "different-pw")
	assert.ErrorIs(t, err, repo.ErrUserAlreadyExists)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_EmailNormalized(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "Alice@X.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice", "alice@x.com", "pw123456")
	assert.ErrorIs(t, err, repo.ErrUserAlreadyExists)

	token, err := svc.Login(ctx, "ALICE@x.COM", "pw123456")
	require.NoError(t, err)

	claims, err := tokens.ClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)
}

func TestAuthService_Login_BadPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@x.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@x.com", "pw123457")
	assert.ErrorIs(t, err, repo.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "pw123456")
	assert.ErrorIs(t, err, repo.ErrInvalidCredentials)
}

func TestAuthService_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret"},
		{name: "empty password", email: "a@x.com", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, "", tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)

			_, err = svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_BootstrapAdmin_Idempotent(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.BootstrapAdmin(ctx, "admin@x.com", "adminpw"))
	// Restart with the same configuration creates nothing new.
	require.NoError(t, svc.BootstrapAdmin(ctx, "admin@x.com", "adminpw"))

	var admins []models.User
	require.NoError(t, svc.Repo.DB.Where("email = ?", "admin@x.com").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin)

	token, err := svc.Login(ctx, "admin@x.com", "adminpw")
	require.NoError(t, err)
	claims, err := tokens.ClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestAuthService_BootstrapAdmin_Unconfigured(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	require.NoError(t, svc.BootstrapAdmin(context.Background(), "", ""))

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
