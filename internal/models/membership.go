package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles, ordered roughly by privilege. Role checks elsewhere are
// exact string matches against these values.
const (
	RoleOwner        = "owner"
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleStaff        = "staff"
	RoleProfessional = "professional"
	RoleReceptionist = "receptionist"
)

var validRoles = map[string]bool{
	RoleOwner:        true,
	RoleAdmin:        true,
	RoleManager:      true,
	RoleStaff:        true,
	RoleProfessional: true,
	RoleReceptionist: true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

// OrganizationMembership is the join entity between users and organizations.
// (organization_id, user_id) is unique: a user holds at most one role per
// organization.
type OrganizationMembership struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	OrganizationID uuid.UUID  `json:"organization_id" db:"organization_id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	Role           string     `json:"role" db:"role"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	InvitedBy      *uuid.UUID `json:"invited_by,omitempty" db:"invited_by"`
	JoinedAt       time.Time  `json:"joined_at" db:"joined_at"`
}

// OrganizationContext is the resolved organization scope for a request.
// Name/Slug/IndustryType may be blank when organization metadata is not
// available; callers must tolerate that.
type OrganizationContext struct {
	OrganizationID uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	IndustryType   string    `json:"industryType"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"isActive"`
}
