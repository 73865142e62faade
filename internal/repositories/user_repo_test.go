package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"reservaplus/internal/common"
	"reservaplus/internal/models"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	userID  uuid.UUID
	orgID   uuid.UUID
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepository(mock)
	suite.userID = uuid.New()
	suite.orgID = uuid.New()
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func stringPtr(s string) *string { return &s }

func (suite *UserRepoTestSuite) userRow(user *models.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "auth0_user_id", "email", "first_name", "last_name", "avatar_url", "is_active", "last_login_at", "created_at", "updated_at"}).
		AddRow(user.ID, user.Auth0UserID, user.Email, user.FirstName, user.LastName, user.AvatarURL, user.IsActive, user.LastLoginAt, user.CreatedAt, user.UpdatedAt)
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	now := time.Now()
	user := &models.User{
		ID:          suite.userID,
		Auth0UserID: "auth0|abc123",
		Email:       "john@example.com",
		FirstName:   stringPtr("John"),
		LastName:    stringPtr("Doe"),
		IsActive:    true,
		LastLoginAt: &now,
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Auth0UserID, user.Email, user.FirstName, user.LastName, user.AvatarURL, user.IsActive, user.LastLoginAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestCreate_UniqueViolationIsConflict() {
	user := &models.User{
		ID:          suite.userID,
		Auth0UserID: "auth0|abc123",
		Email:       "john@example.com",
		IsActive:    true,
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Auth0UserID, user.Email, user.FirstName, user.LastName, user.AvatarURL, user.IsActive, user.LastLoginAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_auth0_user_id_key"})

	err := suite.repo.Create(suite.context, user)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *UserRepoTestSuite) TestGetByAuth0ID_Success() {
	now := time.Now()
	user := &models.User{
		ID:          suite.userID,
		Auth0UserID: "auth0|abc123",
		Email:       "john@example.com",
		FirstName:   stringPtr("John"),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	suite.mock.ExpectQuery(`FROM users\s+WHERE auth0_user_id = \$1 AND deleted_at IS NULL`).
		WithArgs(user.Auth0UserID).
		WillReturnRows(suite.userRow(user))

	result, err := suite.repo.GetByAuth0ID(suite.context, user.Auth0UserID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, result.ID)
	assert.Equal(suite.T(), user.Email, result.Email)
	assert.Equal(suite.T(), "John", *result.FirstName)
	assert.Nil(suite.T(), result.LastName)
}

func (suite *UserRepoTestSuite) TestGetByAuth0ID_NotFound() {
	suite.mock.ExpectQuery(`FROM users\s+WHERE auth0_user_id = \$1 AND deleted_at IS NULL`).
		WithArgs("auth0|missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "auth0_user_id", "email", "first_name", "last_name", "avatar_url", "is_active", "last_login_at", "created_at", "updated_at"}))

	result, err := suite.repo.GetByAuth0ID(suite.context, "auth0|missing")
	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *UserRepoTestSuite) TestUpdate_MissingUserIsNotFound() {
	user := &models.User{
		ID:       suite.userID,
		Email:    "gone@example.com",
		IsActive: true,
	}

	suite.mock.ExpectExec(`UPDATE users`).
		WithArgs(user.Email, user.FirstName, user.LastName, user.AvatarURL, user.IsActive, user.LastLoginAt, user.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, user)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *UserRepoTestSuite) TestListByOrganization() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "auth0_user_id", "email", "first_name", "last_name", "avatar_url", "is_active", "last_login_at", "created_at", "updated_at"}).
		AddRow(uuid.New(), "auth0|u1", "a@example.com", stringPtr("Ana"), nil, nil, true, nil, now, now).
		AddRow(uuid.New(), "auth0|u2", "b@example.com", stringPtr("Bob"), stringPtr("Lee"), nil, true, nil, now, now)

	suite.mock.ExpectQuery(`FROM users u\s+JOIN organization_memberships om ON om.user_id = u.id`).
		WithArgs(suite.orgID, 10, 0).
		WillReturnRows(rows)

	users, err := suite.repo.ListByOrganization(suite.context, suite.orgID, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 2)
	assert.Equal(suite.T(), "a@example.com", users[0].Email)
}

func (suite *UserRepoTestSuite) TestCountByOrganization() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(suite.orgID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := suite.repo.CountByOrganization(suite.context, suite.orgID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, count)
}
