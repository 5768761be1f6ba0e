package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"github.com/Sadisms/stack-radar/internal/middleware/auth"
	"github.com/Sadisms/stack-radar/internal/security"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

var userSortFields = database.SortFieldMap{
	"id":         "u.id",
	"email":      "u.email",
	"full_name":  "u.full_name",
	"created_at": "u.created_at",
}

// AuthHandler serves login and user administration.
type AuthHandler struct {
	logger *zap.Logger
	users  repository.UserRepository
	tokens *security.TokenManager
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(logger *zap.Logger, users repository.UserRepository, tokens *security.TokenManager) *AuthHandler {
	return &AuthHandler{logger: logger, users: users, tokens: tokens}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// CreateUserRequest is the admin user creation payload.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name"`
	IsAdmin  bool    `json:"is_admin"`
	IsActive bool    `json:"is_active"`
}

// UpdateUserRequest is the admin user update payload. Updates replace all
// writable fields; the password is untouched.
type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName *string `json:"full_name"`
	IsAdmin  bool    `json:"is_admin"`
	IsActive bool    `json:"is_active"`
}

// Login authenticates credentials and issues an access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return apperrors.Wrap(err, "look up user")
	}
	if user == nil || !security.CheckPassword(req.Password, user.PasswordHash) {
		return apperrors.Unauthenticatedf("Invalid credentials")
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return apperrors.Internalf(err, "issue token")
	}

	h.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return c.JSON(nethttp.StatusOK, LoginResponse{Token: token, User: *user})
}

// ListUsers returns a filtered, sorted page of users.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	column, field := database.ResolveSortField(userSortFields, params.SortBy)
	params.SortBy = field

	var where database.WhereBuilder
	where.Search(c.QueryParam("q"), "u.email", "u.full_name")
	isAdmin, err := queryBool(c, "is_admin")
	if err != nil {
		return err
	}
	if isAdmin != nil {
		where.Equal("u.is_admin", *isAdmin)
	}
	clause, args := where.Clause()

	ctx := c.Request().Context()
	total, err := h.users.Count(ctx, clause, args)
	if err != nil {
		return apperrors.Wrap(err, "count users")
	}
	items, err := h.users.List(ctx, clause, args,
		database.OrderBy(column, params.SortOrder), params.PageSize, params.Offset())
	if err != nil {
		return apperrors.Wrap(err, "list users")
	}

	return c.JSON(nethttp.StatusOK, entity.NewPaginatedResponse(items, total, params))
}

// GetUser returns one user by id.
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.Wrap(err, "get user")
	}
	if user == nil {
		return apperrors.NotFoundf("User with id=%d not found", id)
	}
	return c.JSON(nethttp.StatusOK, user)
}

// CreateUser creates a new account. Admin only.
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return apperrors.Wrap(err, "check email")
	}
	if existing != nil {
		return apperrors.Validationf("User with this email already exists")
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return apperrors.Internalf(err, "hash password")
	}
	user, err := h.users.Create(ctx, req.Email, hash, req.FullName, req.IsAdmin, req.IsActive)
	if err != nil {
		return apperrors.Wrap(err, "create user")
	}

	h.logger.Info("user created",
		zap.Int64("user_id", user.ID), zap.Bool("is_admin", user.IsAdmin))
	return c.JSON(nethttp.StatusOK, user)
}

// UpdateUser replaces the writable account fields. Admin only.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.users.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get user")
	}
	if existing == nil {
		return apperrors.NotFoundf("User with id=%d not found", id)
	}

	emailOwner, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return apperrors.Wrap(err, "check email")
	}
	if emailOwner != nil && emailOwner.ID != id {
		return apperrors.Validationf("Email is already taken by another user")
	}

	user, err := h.users.Update(ctx, id, req.Email, req.FullName, req.IsAdmin, req.IsActive)
	if err != nil {
		return apperrors.Wrap(err, "update user")
	}
	return c.JSON(nethttp.StatusOK, user)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	current := auth.CurrentUser(c)
	if current != nil && current.ID == id {
		return apperrors.Validationf("You cannot delete your own account")
	}

	ctx := c.Request().Context()
	existing, err := h.users.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get user")
	}
	if existing == nil {
		return apperrors.NotFoundf("User with id=%d not found", id)
	}

	if err := h.users.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete user")
	}
	h.logger.Info("user deleted", zap.Int64("user_id", id))
	return c.NoContent(nethttp.StatusNoContent)
}
