package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/config"
	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/security"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, where string, queryArgs []any, orderBy string, limit, offset int) ([]entity.User, error) {
	args := m.Called(ctx, where, queryArgs, orderBy, limit, offset)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash string, fullName *string, isAdmin, isActive bool) (*entity.User, error) {
	args := m.Called(ctx, email, passwordHash, fullName, isAdmin, isActive)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, email string, fullName *string, isAdmin, isActive bool) (*entity.User, error) {
	args := m.Called(ctx, id, email, fullName, isAdmin, isActive)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestTokenManager(t *testing.T) *security.TokenManager {
	t.Helper()
	tm, err := security.NewTokenManager(config.AuthConfig{
		SecretKey:          "test-secret",
		Algorithm:          "HS256",
		TokenExpireMinutes: 60,
	})
	require.NoError(t, err)
	return tm
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, token string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code())
}

func TestAuthenticate_Success(t *testing.T) {
	tokens := newTestTokenManager(t)
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(7)).
		Return(&entity.User{ID: 7, Email: "user@example.com", IsActive: true}, nil)

	token, err := tokens.Generate(7, "user@example.com")
	require.NoError(t, err)

	mw := NewMiddleware(tokens, users, zap.NewNop())
	c, err := runMiddleware(t, mw.Authenticate(), token)
	require.NoError(t, err)

	user := CurrentUser(c)
	require.NotNil(t, user)
	assert.Equal(t, int64(7), user.ID)
	users.AssertExpectations(t)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw := NewMiddleware(newTestTokenManager(t), new(MockUserRepository), zap.NewNop())

	_, err := runMiddleware(t, mw.Authenticate(), "")
	assertAppErrorCode(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw := NewMiddleware(newTestTokenManager(t), new(MockUserRepository), zap.NewNop())

	_, err := runMiddleware(t, mw.Authenticate(), "not-a-token")
	assertAppErrorCode(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticate_DeletedUserIsRejected(t *testing.T) {
	tokens := newTestTokenManager(t)
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

	token, err := tokens.Generate(9, "gone@example.com")
	require.NoError(t, err)

	mw := NewMiddleware(tokens, users, zap.NewNop())
	_, err = runMiddleware(t, mw.Authenticate(), token)
	assertAppErrorCode(t, err, apperrors.ErrUnauthenticated)
}

func TestRequireActive_RejectsInactiveUser(t *testing.T) {
	mw := NewMiddleware(newTestTokenManager(t), new(MockUserRepository), zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("auth.user", &entity.User{ID: 1, IsActive: false})

	handler := mw.RequireActive()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assertAppErrorCode(t, handler(c), apperrors.ErrUnauthorized)
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	mw := NewMiddleware(newTestTokenManager(t), new(MockUserRepository), zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("auth.user", &entity.User{ID: 1, IsActive: true, IsAdmin: false})

	handler := mw.RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assertAppErrorCode(t, handler(c), apperrors.ErrUnauthorized)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	mw := NewMiddleware(newTestTokenManager(t), new(MockUserRepository), zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("auth.user", &entity.User{ID: 1, IsActive: true, IsAdmin: true})

	handler := mw.RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
}
