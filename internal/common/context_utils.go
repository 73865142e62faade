package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reservaplus/internal/models"
)

type contextKey string

const (
	// UserContextKey holds the *models.UserContext built by the auth gate.
	UserContextKey contextKey = "user_context"
)

// WithUserContext attaches the authenticated user context to ctx.
func WithUserContext(ctx context.Context, uc *models.UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, uc)
}

// GetUserContext extracts the authenticated user context from ctx.
func GetUserContext(ctx context.Context) (*models.UserContext, bool) {
	uc, ok := ctx.Value(UserContextKey).(*models.UserContext)
	return uc, ok
}

// ValidateUUID parses a UUID path/body parameter with a field-specific error.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", fieldName, err)
	}
	return id, nil
}

// ValidatePaginationParams normalizes page/limit query values.
func ValidatePaginationParams(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// SafeString dereferences an optional string.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SplitFullName derives first/last name from a provider full-name claim.
// The first token becomes the first name; the remainder, joined with spaces,
// the last name. Single-token names yield no last name.
func SplitFullName(fullName string) (firstName, lastName *string) {
	if fullName == "" {
		return nil, nil
	}
	parts := strings.Split(fullName, " ")
	firstName = &parts[0]
	if len(parts) > 1 {
		rest := strings.Join(parts[1:], " ")
		lastName = &rest
	}
	return firstName, lastName
}
