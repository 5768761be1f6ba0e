package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
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

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTeamRepository) List(ctx context.Context, where string, queryArgs []any, orderBy string, limit, offset int) ([]entity.Team, error) {
	args := m.Called(ctx, where, queryArgs, orderBy, limit, offset)
	teams, _ := args.Get(0).([]entity.Team)
	return teams, args.Error(1)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*entity.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*entity.Team)
	return team, args.Error(1)
}

func (m *MockTeamRepository) Create(ctx context.Context, in entity.TeamInput) (*entity.Team, error) {
	args := m.Called(ctx, in)
	team, _ := args.Get(0).(*entity.Team)
	return team, args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, id int64, in entity.TeamInput) (*entity.Team, error) {
	args := m.Called(ctx, id, in)
	team, _ := args.Get(0).(*entity.Team)
	return team, args.Error(1)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, where string, queryArgs []any, orderBy string, limit, offset int) ([]entity.Project, error) {
	args := m.Called(ctx, where, queryArgs, orderBy, limit, offset)
	projects, _ := args.Get(0).([]entity.Project)
	return projects, args.Error(1)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*entity.Project)
	return project, args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	args := m.Called(ctx, in)
	project, _ := args.Get(0).(*entity.Project)
	return project, args.Error(1)
}

func (m *MockProjectRepository) Patch(ctx context.Context, id int64, patch entity.ProjectPatch) (*entity.Project, error) {
	args := m.Called(ctx, id, patch)
	project, _ := args.Get(0).(*entity.Project)
	return project, args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Technologies(ctx context.Context, projectID int64) ([]entity.ProjectTechnologyDetail, error) {
	args := m.Called(ctx, projectID)
	details, _ := args.Get(0).([]entity.ProjectTechnologyDetail)
	return details, args.Error(1)
}

func (m *MockProjectRepository) TechnologiesForAll(ctx context.Context, projectIDs []int64) (map[int64][]entity.ProjectTechnologyDetail, error) {
	args := m.Called(ctx, projectIDs)
	grouped, _ := args.Get(0).(map[int64][]entity.ProjectTechnologyDetail)
	return grouped, args.Error(1)
}

func (m *MockProjectRepository) LinkExists(ctx context.Context, projectID, technologyID int64) (bool, error) {
	args := m.Called(ctx, projectID, technologyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) AddTechnology(ctx context.Context, projectID int64, in entity.ProjectTechnologyInput) (*entity.ProjectTechnology, error) {
	args := m.Called(ctx, projectID, in)
	link, _ := args.Get(0).(*entity.ProjectTechnology)
	return link, args.Error(1)
}

func (m *MockProjectRepository) RemoveTechnology(ctx context.Context, projectID, technologyID int64) error {
	args := m.Called(ctx, projectID, technologyID)
	return args.Error(0)
}

type MockTechnologyRepository struct {
	mock.Mock
}

func (m *MockTechnologyRepository) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTechnologyRepository) List(ctx context.Context, where string, queryArgs []any, orderBy string, limit, offset int) ([]entity.Technology, error) {
	args := m.Called(ctx, where, queryArgs, orderBy, limit, offset)
	techs, _ := args.Get(0).([]entity.Technology)
	return techs, args.Error(1)
}

func (m *MockTechnologyRepository) GetByID(ctx context.Context, id int64) (*entity.Technology, error) {
	args := m.Called(ctx, id)
	tech, _ := args.Get(0).(*entity.Technology)
	return tech, args.Error(1)
}

func (m *MockTechnologyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTechnologyRepository) Create(ctx context.Context, in entity.TechnologyInput, statusID int64) (*entity.Technology, error) {
	args := m.Called(ctx, in, statusID)
	tech, _ := args.Get(0).(*entity.Technology)
	return tech, args.Error(1)
}

func (m *MockTechnologyRepository) Update(ctx context.Context, id int64, in entity.TechnologyInput, statusID int64) (*entity.Technology, error) {
	args := m.Called(ctx, id, in, statusID)
	tech, _ := args.Get(0).(*entity.Technology)
	return tech, args.Error(1)
}

func (m *MockTechnologyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTechnologyRepository) ListCategories(ctx context.Context) ([]entity.TechnologyCategory, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]entity.TechnologyCategory)
	return categories, args.Error(1)
}

func (m *MockTechnologyRepository) GetCategoryByID(ctx context.Context, id int64) (*entity.TechnologyCategory, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entity.TechnologyCategory)
	return category, args.Error(1)
}

func (m *MockTechnologyRepository) GetCategoryByName(ctx context.Context, name string) (*entity.TechnologyCategory, error) {
	args := m.Called(ctx, name)
	category, _ := args.Get(0).(*entity.TechnologyCategory)
	return category, args.Error(1)
}

func (m *MockTechnologyRepository) CreateCategory(ctx context.Context, in entity.TechnologyCategoryInput) (*entity.TechnologyCategory, error) {
	args := m.Called(ctx, in)
	category, _ := args.Get(0).(*entity.TechnologyCategory)
	return category, args.Error(1)
}

func (m *MockTechnologyRepository) ListStatuses(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	statuses, _ := args.Get(0).([]string)
	return statuses, args.Error(1)
}

func (m *MockTechnologyRepository) GetStatusByName(ctx context.Context, name string) (*entity.TechnologyStatus, error) {
	args := m.Called(ctx, name)
	status, _ := args.Get(0).(*entity.TechnologyStatus)
	return status, args.Error(1)
}

func (m *MockTechnologyRepository) CreateStatus(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockTechnologyRepository) VersionBelongs(ctx context.Context, versionID, technologyID int64) (bool, error) {
	args := m.Called(ctx, versionID, technologyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTechnologyRepository) Stats(ctx context.Context) ([]entity.TechnologyStats, *entity.TechnologyStatsSummary, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]entity.TechnologyStats)
	summary, _ := args.Get(1).(*entity.TechnologyStatsSummary)
	return stats, summary, args.Error(2)
}

// testValidator mirrors the server's validator wiring for handler tests.
type testValidator struct {
	validate *validator.Validate
}

func (v testValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.Validationf("Validation failed")
	}
	return nil
}

// newTestContext builds an Echo context with the request validator attached.
func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = testValidator{validate: validator.New()}

	var req *nethttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}
