package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"reservaplus/internal/common"
	"reservaplus/internal/config"
	"reservaplus/internal/models"
	"reservaplus/internal/repositories"
)

// AuthService composes verification, provisioning and context resolution into
// the auth flows exposed over HTTP.
type AuthService interface {
	GetLoginURL(returnTo string) *models.LoginURLResult
	GetProfile(ctx context.Context, userContext *models.UserContext) (*models.UserProfile, error)
	SwitchOrganization(ctx context.Context, userContext *models.UserContext, organizationID uuid.UUID) (*models.TokenResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResult, error)
	Logout() string
}

type authService struct {
	auth0    config.Auth0Config
	appURL   string
	userRepo repositories.UserRepository
	orgSvc   OrgContextService
	sessions SessionService
}

func NewAuthService(auth0 config.Auth0Config, appURL string, userRepo repositories.UserRepository, orgSvc OrgContextService, sessions SessionService) AuthService {
	return &authService{
		auth0:    auth0,
		appURL:   appURL,
		userRepo: userRepo,
		orgSvc:   orgSvc,
		sessions: sessions,
	}
}

// GetLoginURL builds the provider authorization URL. returnTo rides along
// opaquely as the state parameter; validating its destination is the
// frontend's concern.
func (s *authService) GetLoginURL(returnTo string) *models.LoginURLResult {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", s.auth0.ClientID)
	params.Set("redirect_uri", s.appURL+"/auth/callback")
	params.Set("scope", "openid profile email")
	params.Set("audience", s.auth0.Audience)
	if returnTo != "" {
		params.Set("state", returnTo)
	}

	return &models.LoginURLResult{
		LoginURL: fmt.Sprintf("https://%s/authorize?%s", s.auth0.Domain, params.Encode()),
	}
}

func (s *authService) GetProfile(ctx context.Context, userContext *models.UserContext) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userContext.ID)
	if err != nil {
		return nil, fmt.Errorf("profile for %s: %w", userContext.ID, err)
	}

	organizations, err := s.orgSvc.ListAll(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var current *models.OrganizationContext
	if userContext.OrganizationID != nil {
		for i := range organizations {
			if organizations[i].OrganizationID == *userContext.OrganizationID {
				current = &organizations[i]
				break
			}
		}
	}

	return &models.UserProfile{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		FullName:      user.FullName(),
		AvatarURL:     user.AvatarURL,
		Role:          userContext.Role,
		Organization:  current,
		Organizations: organizations,
		LastLoginAt:   user.LastLoginAt,
	}, nil
}

func (s *authService) SwitchOrganization(ctx context.Context, userContext *models.UserContext, organizationID uuid.UUID) (*models.TokenResult, error) {
	orgContext, err := s.orgSvc.ResolveContext(ctx, userContext.ID, &organizationID)
	if err != nil {
		return nil, err
	}
	if orgContext == nil {
		return nil, common.ErrUnauthorized.WithMessage("User does not belong to this organization")
	}

	// The new token keeps the caller's pre-switch subject and email; only the
	// organization scope changes.
	accessToken, err := s.sessions.Issue(userContext.Auth0UserID, userContext.Email, organizationID.String(), orgContext.Role)
	if err != nil {
		return nil, err
	}

	return &models.TokenResult{
		AccessToken: accessToken,
		ExpiresIn:   s.sessions.ExpiresIn(),
	}, nil
}

// RefreshToken is a pure token renewal: claims carry over unchanged, the
// organization is not re-resolved. Every failure is normalized to the same
// Unauthorized answer so the caller learns nothing about the cause.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResult, error) {
	claims, err := s.sessions.Verify(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized.WithMessage("Invalid refresh token")
	}

	user, err := s.userRepo.GetByAuth0ID(ctx, claims.Subject)
	if err != nil || !user.IsActive {
		return nil, common.ErrUnauthorized.WithMessage("Invalid refresh token")
	}

	accessToken, err := s.sessions.Issue(claims.Subject, claims.Email, claims.OrganizationID, claims.Role)
	if err != nil {
		return nil, common.ErrUnauthorized.WithMessage("Invalid refresh token")
	}

	return &models.TokenResult{
		AccessToken: accessToken,
		ExpiresIn:   s.sessions.ExpiresIn(),
	}, nil
}

// Logout is a stateless acknowledgment. Sessions are bearer tokens with
// natural expiry; there is no blacklist or session store to clear.
func (s *authService) Logout() string {
	return "Logged out successfully"
}
