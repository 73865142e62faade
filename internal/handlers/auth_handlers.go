package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reservaplus/internal/common"
	"reservaplus/internal/services"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// SwitchOrganizationRequest carries the target organization for a switch.
type SwitchOrganizationRequest struct {
	OrganizationID string `json:"organizationId"`
}

// RefreshTokenRequest carries the token to renew.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// CallbackRequest carries the provider callback payload.
type CallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state,omitempty"`
}

// GetLoginURL godoc
// @Summary Get the identity-provider login URL
// @Tags auth
// @Param returnTo query string false "URL to return to after login"
// @Success 200 {object} common.Response
// @Router /auth/login [get]
func (h *AuthHandlers) GetLoginURL(c echo.Context) error {
	result := h.authService.GetLoginURL(c.QueryParam("returnTo"))
	return common.SendSuccess(c, http.StatusOK, result, "")
}

// Callback godoc
// @Summary Identity-provider callback
// @Tags auth
// @Success 200 {object} common.Response
// @Router /auth/callback [post]
func (h *AuthHandlers) Callback(c echo.Context) error {
	var req CallbackRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.ErrUnauthorized.WithMessage("Invalid callback payload"))
	}
	// The authorization code is not exchanged yet; the endpoint acknowledges
	// the redirect and nothing else.
	return common.SendSuccess(c, http.StatusOK, nil, "Auth0 callback endpoint - to be implemented")
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} common.Response{data=models.UserProfile}
// @Router /auth/profile [get]
func (h *AuthHandlers) GetProfile(c echo.Context) error {
	userContext, ok := common.GetUserContext(c.Request().Context())
	if !ok {
		return common.SendError(c, common.ErrAuthenticationRequired)
	}

	profile, err := h.authService.GetProfile(c.Request().Context(), userContext)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, profile, "")
}

// Me is an alias for GetProfile.
func (h *AuthHandlers) Me(c echo.Context) error {
	return h.GetProfile(c)
}

// SwitchOrganization godoc
// @Summary Switch the user's active organization
// @Tags auth
// @Security BearerAuth
// @Param body body SwitchOrganizationRequest true "Target organization"
// @Success 200 {object} common.Response{data=models.TokenResult}
// @Router /auth/switch-organization [post]
func (h *AuthHandlers) SwitchOrganization(c echo.Context) error {
	userContext, ok := common.GetUserContext(c.Request().Context())
	if !ok {
		return common.SendError(c, common.ErrAuthenticationRequired)
	}

	var req SwitchOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	organizationID, err := common.ValidateUUID(req.OrganizationID, "organizationId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.SwitchOrganization(c.Request().Context(), userContext, organizationID)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, result, "Organization switched successfully")
}

// RefreshToken godoc
// @Summary Refresh a session token
// @Tags auth
// @Param body body RefreshTokenRequest true "Token to refresh"
// @Success 200 {object} common.Response{data=models.TokenResult}
// @Router /auth/refresh [post]
func (h *AuthHandlers) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return common.SendError(c, common.ErrUnauthorized.WithMessage("Invalid refresh token"))
	}

	result, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, result, "")
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} common.Response
// @Router /auth/logout [post]
func (h *AuthHandlers) Logout(c echo.Context) error {
	return common.SendSuccess(c, http.StatusOK, nil, h.authService.Logout())
}
