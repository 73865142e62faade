package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reservaplus/internal/common"
	"reservaplus/internal/config"
	"reservaplus/internal/models"
)

// SessionService mints and verifies internally-signed session tokens. It is a
// separate signing domain from the identity verifier: HS256 with the local
// secret, never the provider's RS256 keys.
type SessionService interface {
	// Issue signs {subject, email, organizationId, role}. Subject is
	// mandatory; organization claims are optional for org-less flows.
	Issue(subject, email, organizationID, role string) (string, error)
	// Verify is the single source of truth for session-token validity in
	// refresh flows; no lenient parsing.
	Verify(tokenString string) (*models.SessionClaims, error)
	// ExpiresIn is the configured token lifetime in seconds.
	ExpiresIn() int
}

type sessionService struct {
	secret    []byte
	expirySec int
}

func NewSessionService(cfg config.JWTConfig) SessionService {
	return &sessionService{
		secret:    []byte(cfg.Secret),
		expirySec: parseExpiry(cfg.ExpiresIn),
	}
}

func (s *sessionService) Issue(subject, email, organizationID, role string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("session token requires a subject: %w", common.ErrInvalidToken)
	}

	now := time.Now()
	claims := models.SessionClaims{
		Email:          email,
		OrganizationID: organizationID,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expirySec) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *sessionService) Verify(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("session token rejected: %w", common.ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

func (s *sessionService) ExpiresIn() int {
	return s.expirySec
}

// parseExpiry converts duration strings like "24h" or "30m" to seconds.
// Anything unparseable falls back to one hour.
func parseExpiry(expiresIn string) int {
	if v, ok := strings.CutSuffix(expiresIn, "h"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n * 3600
		}
	}
	if v, ok := strings.CutSuffix(expiresIn, "m"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n * 60
		}
	}
	return 3600
}
