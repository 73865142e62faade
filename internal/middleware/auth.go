package middleware

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"reservaplus/internal/common"
	"reservaplus/internal/models"
	"reservaplus/internal/services"
)

// RoutePolicy is the per-route authorization record. Replaces annotation
// metadata with an explicit value evaluated on every request.
type RoutePolicy struct {
	Public                   bool
	AllowWithoutOrganization bool
	RequiredRoles            []string
}

// AuthMiddleware runs the request authorization gate: token verification,
// just-in-time provisioning, organization-context attachment and role checks,
// in that order, short-circuiting on the first failing rule. Nothing is
// cached between requests.
type AuthMiddleware struct {
	verifier    services.IdentityVerifier
	provisioner services.ProvisioningService
	orgSvc      services.OrgContextService
}

func NewAuthMiddleware(verifier services.IdentityVerifier, provisioner services.ProvisioningService, orgSvc services.OrgContextService) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:    verifier,
		provisioner: provisioner,
		orgSvc:      orgSvc,
	}
}

func (m *AuthMiddleware) WithPolicy(policy RoutePolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if policy.Public {
				return next(c)
			}

			ctx := c.Request().Context()

			tokenString, ok := bearerToken(c)
			if !ok {
				return common.SendError(c, common.ErrAuthenticationRequired)
			}

			claims, err := m.verifier.Verify(ctx, tokenString)
			if err != nil {
				return common.SendError(c, common.ErrAuthenticationRequired)
			}

			user, err := m.provisioner.ResolveOrCreate(ctx, claims)
			if err != nil {
				return common.SendError(c, common.ErrAuthenticationRequired)
			}
			if !user.IsActive {
				return common.SendError(c, common.ErrAuthenticationRequired.WithMessage("User account is inactive"))
			}

			orgContext, err := m.orgSvc.ResolveContext(ctx, user.ID, organizationHint(claims))
			if err != nil {
				return common.SendError(c, common.ErrAuthenticationRequired)
			}
			if orgContext == nil && !policy.AllowWithoutOrganization {
				return common.SendError(c, common.ErrOrganizationRequired)
			}

			userContext := &models.UserContext{
				ID:          user.ID,
				Auth0UserID: user.Auth0UserID,
				Email:       user.Email,
				FirstName:   user.FirstName,
				LastName:    user.LastName,
				IsActive:    user.IsActive,
			}
			if orgContext != nil {
				orgID := orgContext.OrganizationID
				role := orgContext.Role
				userContext.OrganizationID = &orgID
				userContext.Role = &role
			}

			if len(policy.RequiredRoles) > 0 {
				// No role when roles are required is always a denial, never
				// "no restriction".
				if userContext.Role == nil || !containsRole(policy.RequiredRoles, *userContext.Role) {
					actual := "none"
					if userContext.Role != nil {
						actual = *userContext.Role
					}
					log.Printf("access denied for user %s: required roles [%s], actual role %s",
						user.ID, strings.Join(policy.RequiredRoles, ", "), actual)
					return common.SendError(c, common.ErrForbidden)
				}
			}

			c.SetRequest(c.Request().WithContext(common.WithUserContext(ctx, userContext)))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// organizationHint extracts the preferred organization from the token's
// custom claim. A malformed id is treated as no preference.
func organizationHint(claims *models.IdentityClaims) *uuid.UUID {
	if claims.OrganizationID == "" {
		return nil
	}
	orgID, err := uuid.Parse(claims.OrganizationID)
	if err != nil {
		return nil
	}
	return &orgID
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
