package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"reservaplus/internal/common"
	"reservaplus/internal/config"
	"reservaplus/internal/models"
)

// IdentityVerifier validates bearer tokens issued by the external identity
// provider. Verification is pure: no user record is touched here.
type IdentityVerifier interface {
	Verify(ctx context.Context, tokenString string) (*models.IdentityClaims, error)
	Close()
}

type auth0Verifier struct {
	keyfunc  jwt.Keyfunc
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

// NewAuth0Verifier builds a verifier backed by the provider's remote key set.
// Keys are cached between rotations and refreshed at a bounded rate, so
// concurrent requests never trigger a fetch storm.
func NewAuth0Verifier(cfg config.Auth0Config) (IdentityVerifier, error) {
	jwks, err := keyfunc.Get(cfg.JWKSURL(), keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  12 * time.Second, // ~5 key fetches per minute
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Printf("WARN: JWKS refresh failed: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", cfg.JWKSURL(), err)
	}

	return &auth0Verifier{
		keyfunc:  jwks.Keyfunc,
		jwks:     jwks,
		issuer:   cfg.Issuer(),
		audience: cfg.Audience,
	}, nil
}

// newVerifierWithKeyfunc wires a fixed key source; used by tests.
func newVerifierWithKeyfunc(issuer, audience string, kf jwt.Keyfunc) IdentityVerifier {
	return &auth0Verifier{keyfunc: kf, issuer: issuer, audience: audience}
}

func (v *auth0Verifier) Verify(ctx context.Context, tokenString string) (*models.IdentityClaims, error) {
	claims := &models.IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc,
		// Only the provider's asymmetric scheme. HS256 session tokens signed
		// with the local secret must never pass this verifier.
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("identity token expired: %w", common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("identity token rejected: %w", common.ErrInvalidToken)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, common.ErrInvalidToken.WithMessage("Invalid token payload")
	}
	return claims, nil
}

func (v *auth0Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
