package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"reservaplus/internal/common"
	"reservaplus/internal/models"
	"reservaplus/internal/repositories"
)

// ProvisioningService creates or refreshes local user records from verified
// identity-provider claims. It is the only code path that stamps
// last_login_at.
type ProvisioningService interface {
	// ResolveOrCreate looks the user up by provider subject id, creating the
	// record on first login. A concurrent first login surfaces as Conflict;
	// callers should retry, which lands on the update path.
	ResolveOrCreate(ctx context.Context, claims *models.IdentityClaims) (*models.User, error)
	// UpdateFromClaims syncs mutable profile fields onto an existing user,
	// addressed by internal id. NotFound when the id does not exist.
	UpdateFromClaims(ctx context.Context, userID uuid.UUID, claims *models.IdentityClaims) (*models.User, error)
}

type provisioningService struct {
	userRepo repositories.UserRepository
}

func NewProvisioningService(userRepo repositories.UserRepository) ProvisioningService {
	return &provisioningService{userRepo: userRepo}
}

func (s *provisioningService) ResolveOrCreate(ctx context.Context, claims *models.IdentityClaims) (*models.User, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, claims.Subject)
	if err == nil {
		return s.sync(ctx, user, claims)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user %s: %w", claims.Subject, err)
	}

	firstName, lastName := common.SplitFullName(claims.Name)
	now := time.Now()
	user = &models.User{
		ID:          uuid.New(),
		Auth0UserID: claims.Subject,
		Email:       claims.Email,
		FirstName:   firstName,
		LastName:    lastName,
		IsActive:    true,
		LastLoginAt: &now,
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.AvatarURL = &picture
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Conflict from the storage layer means a concurrent insert already
		// created this subject; propagate it as retryable.
		return nil, err
	}
	return user, nil
}

func (s *provisioningService) UpdateFromClaims(ctx context.Context, userID uuid.UUID, claims *models.IdentityClaims) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return s.sync(ctx, user, claims)
}

// sync overwrites profile fields with the latest claim values, keeping the
// stored value when the claim is empty, and stamps last login.
func (s *provisioningService) sync(ctx context.Context, user *models.User, claims *models.IdentityClaims) (*models.User, error) {
	if claims.Email != "" {
		user.Email = claims.Email
	}
	firstName, lastName := common.SplitFullName(claims.Name)
	if firstName != nil {
		user.FirstName = firstName
	}
	if lastName != nil {
		user.LastName = lastName
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.AvatarURL = &picture
	}
	now := time.Now()
	user.LastLoginAt = &now

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user %s: %w", user.ID, err)
	}
	return user, nil
}
