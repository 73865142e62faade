package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"reservaplus/internal/common"
	"reservaplus/internal/config"
)

func newTestSessionService(expiresIn string) SessionService {
	return NewSessionService(config.JWTConfig{Secret: "test-secret-key", ExpiresIn: expiresIn})
}

func TestSessionService_IssueVerifyRoundTrip(t *testing.T) {
	svc := newTestSessionService("24h")

	token, err := svc.Issue("auth0|abc123", "john@example.com", "11111111-1111-1111-1111-111111111111", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "auth0|abc123", claims.Subject)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", claims.OrganizationID)
	assert.Equal(t, "admin", claims.Role)
}

func TestSessionService_IssueWithoutSubjectFails(t *testing.T) {
	svc := newTestSessionService("24h")

	_, err := svc.Issue("", "john@example.com", "", "")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSessionService_OrganizationClaimsAreOptional(t *testing.T) {
	svc := newTestSessionService("24h")

	token, err := svc.Issue("auth0|noorg", "noorg@example.com", "", "")
	assert.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Empty(t, claims.OrganizationID)
	assert.Empty(t, claims.Role)
}

func TestSessionService_TamperedSignatureRejected(t *testing.T) {
	svc := newTestSessionService("24h")

	token, err := svc.Issue("auth0|abc123", "john@example.com", "", "")
	assert.NoError(t, err)

	// Flip a byte in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSessionService_WrongSecretRejected(t *testing.T) {
	issuer := NewSessionService(config.JWTConfig{Secret: "secret-a", ExpiresIn: "24h"})
	verifier := NewSessionService(config.JWTConfig{Secret: "secret-b", ExpiresIn: "24h"})

	token, err := issuer.Issue("auth0|abc123", "john@example.com", "", "")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSessionService_GarbageTokenRejected(t *testing.T) {
	svc := newTestSessionService("24h")

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"24h", 86400},
		{"1h", 3600},
		{"30m", 1800},
		{"90m", 5400},
		{"", 3600},
		{"soon", 3600},
		{"xh", 3600},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseExpiry(tt.in), "parseExpiry(%q)", tt.in)
	}
}

func TestSessionService_ExpiresInMatchesConfig(t *testing.T) {
	assert.Equal(t, 1800, newTestSessionService("30m").ExpiresIn())
	assert.Equal(t, 3600, newTestSessionService("bogus").ExpiresIn())
}
