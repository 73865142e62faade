package services

import (
	"context"

	"github.com/google/uuid"

	"reservaplus/internal/models"
	"reservaplus/internal/repositories"
)

// OrgContextService resolves which organization and role apply to a request.
type OrgContextService interface {
	// ResolveContext picks the governing membership. With a preferred
	// organization the result is that organization's membership or nil; there
	// is no fallback to another organization. Without one, the most recently
	// joined active membership wins. nil means no qualifying membership, and
	// callers decide whether that is fatal.
	ResolveContext(ctx context.Context, userID uuid.UUID, preferredOrganizationID *uuid.UUID) (*models.OrganizationContext, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]models.OrganizationContext, error)
}

type orgContextService struct {
	memberships repositories.MembershipRepository
}

func NewOrgContextService(memberships repositories.MembershipRepository) OrgContextService {
	return &orgContextService{memberships: memberships}
}

func (s *orgContextService) ResolveContext(ctx context.Context, userID uuid.UUID, preferredOrganizationID *uuid.UUID) (*models.OrganizationContext, error) {
	return s.memberships.ResolveContext(ctx, userID, preferredOrganizationID)
}

func (s *orgContextService) ListAll(ctx context.Context, userID uuid.UUID) ([]models.OrganizationContext, error) {
	contexts, err := s.memberships.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if contexts == nil {
		contexts = []models.OrganizationContext{}
	}
	return contexts, nil
}
