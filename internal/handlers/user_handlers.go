package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"reservaplus/internal/common"
	"reservaplus/internal/models"
	"reservaplus/internal/repositories"
	"reservaplus/internal/services"
)

// UserHandlers serves the organization-scoped user directory and the
// caller's own profile mutations.
type UserHandlers struct {
	userRepo  repositories.UserRepository
	avatarSvc services.AvatarService
}

func NewUserHandlers(userRepo repositories.UserRepository, avatarSvc services.AvatarService) *UserHandlers {
	return &UserHandlers{userRepo: userRepo, avatarSvc: avatarSvc}
}

type UpdateMeRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

// ListUsers godoc
// @Summary List users of the caller's organization
// @Tags users
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response{data=UserListResponse}
// @Router /v1/users [get]
func (h *UserHandlers) ListUsers(c echo.Context) error {
	userContext, ok := common.GetUserContext(c.Request().Context())
	if !ok || userContext.OrganizationID == nil {
		return common.SendError(c, common.ErrOrganizationRequired)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, limit = common.ValidatePaginationParams(page, limit)

	ctx := c.Request().Context()
	users, err := h.userRepo.ListByOrganization(ctx, *userContext.OrganizationID, limit, (page-1)*limit)
	if err != nil {
		return common.SendError(c, err)
	}
	total, err := h.userRepo.CountByOrganization(ctx, *userContext.OrganizationID)
	if err != nil {
		return common.SendError(c, err)
	}

	return common.SendSuccess(c, http.StatusOK, &UserListResponse{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	}, "")
}

// UpdateMe godoc
// @Summary Update the caller's profile
// @Tags users
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Profile fields"
// @Success 200 {object} common.Response{data=models.User}
// @Router /v1/users/me [put]
func (h *UserHandlers) UpdateMe(c echo.Context) error {
	userContext, ok := common.GetUserContext(c.Request().Context())
	if !ok {
		return common.SendError(c, common.ErrAuthenticationRequired)
	}

	var req UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx := c.Request().Context()
	user, err := h.userRepo.GetByID(ctx, userContext.ID)
	if err != nil {
		return common.SendError(c, err)
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if err := h.userRepo.Update(ctx, user); err != nil {
		return common.SendError(c, err)
	}

	return common.SendSuccess(c, http.StatusOK, user, "Profile updated")
}

// UploadAvatar godoc
// @Summary Upload the caller's avatar image
// @Tags users
// @Security BearerAuth
// @Accept multipart/form-data
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} common.Response{data=AvatarResponse}
// @Router /v1/users/me/avatar [post]
func (h *UserHandlers) UploadAvatar(c echo.Context) error {
	userContext, ok := common.GetUserContext(c.Request().Context())
	if !ok {
		return common.SendError(c, common.ErrAuthenticationRequired)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read avatar file")
	}
	defer file.Close()

	ctx := c.Request().Context()
	contentType := fileHeader.Header.Get("Content-Type")
	if _, err := h.avatarSvc.Upload(ctx, userContext.ID, contentType, file, fileHeader.Size); err != nil {
		return common.SendError(c, err)
	}

	avatarURL, err := h.avatarSvc.GetPresignedURL(ctx, userContext.ID, 24*time.Hour)
	if err != nil {
		return common.SendError(c, err)
	}

	user, err := h.userRepo.GetByID(ctx, userContext.ID)
	if err != nil {
		return common.SendError(c, err)
	}
	user.AvatarURL = &avatarURL
	if err := h.userRepo.Update(ctx, user); err != nil {
		return common.SendError(c, err)
	}

	return common.SendSuccess(c, http.StatusOK, &AvatarResponse{AvatarURL: avatarURL}, "Avatar updated")
}
