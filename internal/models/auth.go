package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Namespaced custom claims carried by Auth0-issued identity tokens.
const (
	ClaimOrganizationID = "https://reservaplus.com/organizationId"
	ClaimRole           = "https://reservaplus.com/role"
)

// IdentityClaims are the decoded claims of an identity-provider token.
type IdentityClaims struct {
	Scope           string `json:"scope,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
	Email           string `json:"email,omitempty"`
	EmailVerified   bool   `json:"email_verified,omitempty"`
	Name            string `json:"name,omitempty"`
	Picture         string `json:"picture,omitempty"`
	OrganizationID  string `json:"https://reservaplus.com/organizationId,omitempty"`
	Role            string `json:"https://reservaplus.com/role,omitempty"`
	jwt.RegisteredClaims
}

// SessionClaims are the claims of an internally-signed session token:
// subject is the provider user id, plus the organization scope granted at
// issue time.
type SessionClaims struct {
	Email          string `json:"email,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	Role           string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserContext is the request-scoped authenticated identity. Built fresh on
// every request by the auth middleware, never persisted.
type UserContext struct {
	ID             uuid.UUID  `json:"id"`
	Auth0UserID    string     `json:"auth0_user_id"`
	Email          string     `json:"email"`
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Role           *string    `json:"role,omitempty"`
	IsActive       bool       `json:"is_active"`
}

// TokenResult is returned by flows that mint a new session token.
type TokenResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// UserProfile aggregates the user record with its organization memberships.
type UserProfile struct {
	ID            uuid.UUID             `json:"id"`
	Email         string                `json:"email"`
	FirstName     *string               `json:"firstName,omitempty"`
	LastName      *string               `json:"lastName,omitempty"`
	FullName      string                `json:"fullName"`
	AvatarURL     *string               `json:"avatarUrl,omitempty"`
	Role          *string               `json:"role,omitempty"`
	Organization  *OrganizationContext  `json:"organization,omitempty"`
	Organizations []OrganizationContext `json:"organizations"`
	LastLoginAt   *time.Time            `json:"lastLoginAt,omitempty"`
}

// LoginURLResult wraps the provider authorization URL.
type LoginURLResult struct {
	LoginURL string `json:"loginUrl"`
}
