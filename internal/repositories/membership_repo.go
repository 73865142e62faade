package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"reservaplus/internal/models"
)

// MembershipRepository reads organization memberships. The auth core never
// creates memberships; invitation flows own that table.
type MembershipRepository interface {
	// ResolveContext returns the membership governing the current request:
	// the preferred organization's membership when a preference is given, or
	// the most recently joined active membership otherwise. A nil result with
	// a nil error means no qualifying membership exists.
	ResolveContext(ctx context.Context, userID uuid.UUID, preferredOrganizationID *uuid.UUID) (*models.OrganizationContext, error)
	// ListActive returns all active memberships in non-deleted organizations,
	// most recently joined first.
	ListActive(ctx context.Context, userID uuid.UUID) ([]models.OrganizationContext, error)
}

type membershipRepo struct {
	db DB
}

func NewMembershipRepository(db DB) MembershipRepository {
	return &membershipRepo{db: db}
}

const membershipSelect = `
	SELECT om.organization_id, om.role, om.is_active,
	       COALESCE(o.name, ''), COALESCE(o.slug, ''), COALESCE(o.industry_type, '')
	FROM organization_memberships om
	JOIN organizations o ON o.id = om.organization_id
	WHERE om.user_id = $1 AND om.is_active = TRUE AND o.deleted_at IS NULL`

func (r *membershipRepo) ResolveContext(ctx context.Context, userID uuid.UUID, preferredOrganizationID *uuid.UUID) (*models.OrganizationContext, error) {
	query := membershipSelect
	args := []any{userID}
	if preferredOrganizationID != nil {
		// A preference constrains the selection; it never falls back to a
		// different organization.
		query += ` AND om.organization_id = $2`
		args = append(args, *preferredOrganizationID)
	}
	query += `
	ORDER BY om.joined_at DESC, om.id DESC
	LIMIT 1`

	oc := &models.OrganizationContext{}
	err := r.db.QueryRow(ctx, query, args...).Scan(&oc.OrganizationID, &oc.Role, &oc.IsActive, &oc.Name, &oc.Slug, &oc.IndustryType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve organization context: %w", err)
	}
	return oc, nil
}

func (r *membershipRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]models.OrganizationContext, error) {
	query := membershipSelect + `
	ORDER BY om.joined_at DESC, om.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var contexts []models.OrganizationContext
	for rows.Next() {
		var oc models.OrganizationContext
		if err := rows.Scan(&oc.OrganizationID, &oc.Role, &oc.IsActive, &oc.Name, &oc.Slug, &oc.IndustryType); err != nil {
			return nil, err
		}
		contexts = append(contexts, oc)
	}
	return contexts, rows.Err()
}
