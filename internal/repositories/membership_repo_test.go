package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"reservaplus/internal/models"
)

type MembershipRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    MembershipRepository
	userID  uuid.UUID
	orgID   uuid.UUID
	context context.Context
}

func (suite *MembershipRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewMembershipRepository(mock)
	suite.userID = uuid.New()
	suite.orgID = uuid.New()
	suite.context = context.Background()
}

func (suite *MembershipRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestMembershipRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipRepoTestSuite))
}

func membershipColumns() []string {
	return []string{"organization_id", "role", "is_active", "name", "slug", "industry_type"}
}

func (suite *MembershipRepoTestSuite) TestResolveContext_MostRecentWins() {
	suite.mock.ExpectQuery(`FROM organization_memberships om\s+JOIN organizations o ON o.id = om.organization_id`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows(membershipColumns()).
			AddRow(suite.orgID, models.RoleAdmin, true, "Clinica Dental", "clinica-dental", "dental"))

	oc, err := suite.repo.ResolveContext(suite.context, suite.userID, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.orgID, oc.OrganizationID)
	assert.Equal(suite.T(), models.RoleAdmin, oc.Role)
	assert.True(suite.T(), oc.IsActive)
	assert.Equal(suite.T(), "clinica-dental", oc.Slug)
}

func (suite *MembershipRepoTestSuite) TestResolveContext_PreferredConstrains() {
	preferred := uuid.New()
	suite.mock.ExpectQuery(`AND om.organization_id = \$2`).
		WithArgs(suite.userID, preferred).
		WillReturnRows(pgxmock.NewRows(membershipColumns()))

	oc, err := suite.repo.ResolveContext(suite.context, suite.userID, &preferred)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), oc)
}

func (suite *MembershipRepoTestSuite) TestResolveContext_NoMembershipsIsNil() {
	suite.mock.ExpectQuery(`FROM organization_memberships om`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows(membershipColumns()))

	oc, err := suite.repo.ResolveContext(suite.context, suite.userID, nil)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), oc)
}

func (suite *MembershipRepoTestSuite) TestListActive_MostRecentFirst() {
	first := uuid.New()
	second := uuid.New()
	suite.mock.ExpectQuery(`FROM organization_memberships om`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows(membershipColumns()).
			AddRow(first, models.RoleOwner, true, "Newest Org", "newest-org", "salon").
			AddRow(second, models.RoleStaff, true, "", "", ""))

	contexts, err := suite.repo.ListActive(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), contexts, 2)
	assert.Equal(suite.T(), first, contexts[0].OrganizationID)
	assert.Equal(suite.T(), models.RoleOwner, contexts[0].Role)
	// Organization metadata may be blank; callers tolerate it.
	assert.Equal(suite.T(), "", contexts[1].Name)
}
