package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	newUser.ID = uuid.NewString()
	newUser.CreatedAt = time.Now()
	newUser.UpdatedAt = newUser.CreatedAt
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) UpdateShopName(_ context.Context, id string, shopName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.ShopName = &shopName
	f.users[id] = u
	return nil
}

type fakeRefreshTokenRepo struct {
	mu      sync.Mutex
	tokens  map[string]int64
	revoked map[string]bool
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]int64), revoked: make(map[string]bool)}
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, _ string, token string, expiresAt int64, _ auth.SessionTrackingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = expiresAt
	return nil
}

func (f *fakeRefreshTokenRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	exp, ok := f.tokens[token]
	if !ok {
		return true, nil
	}
	return f.revoked[token] || exp <= time.Now().Unix(), nil
}

func (f *fakeRefreshTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[token] = true
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for token, exp := range f.tokens {
		if exp < before.Unix() {
			delete(f.tokens, token)
			n++
		}
	}
	return n, nil
}

func newTestAuthService(t *testing.T) (auth.AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour, false)

	svc := NewAuthService(fakeTransactor{}, users, jwtService, tokens)
	svc.(*AuthServiceImpl).bcryptCost = bcrypt.MinCost
	return svc, users, tokens
}

func registerOwner(t *testing.T, svc auth.AuthService) auth.TokenResponse {
	t.Helper()
	shop := "  엔니네 카페 "
	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:           "Owner@Example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		ShopName:        &shop,
	}, auth.SessionTrackingRequest{UserAgent: "test", IPAddress: "127.0.0.1"})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, users, tokens := newTestAuthService(t)

	resp := registerOwner(t, svc)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)

	stored, err := users.GetByEmail(context.Background(), "owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ShopName)
	assert.Equal(t, "엔니네 카페", *stored.ShopName)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.Contains(t, tokens.tokens, resp.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerOwner(t, svc)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:           "owner@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registerOwner(t, svc)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "owner@example.com",
			Password: "password123",
		}, auth.SessionTrackingRequest{})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "owner@example.com",
			Password: "wrong-password",
		}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		}, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	resp := registerOwner(t, svc)

	refreshed, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: resp.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "access token must not be accepted as a refresh token")

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	resp := registerOwner(t, svc)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))

	_, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// second logout is a no-op
	assert.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
}
