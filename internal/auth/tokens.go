package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "concord"

// IdentityClaims is what the identity provider asserts about a user in an
// ID token: a stable user id plus the fields needed to bootstrap a profile.
type IdentityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService verifies identity-provider ID tokens and mints the session
// tokens carried by the session cookie.
type TokenService struct {
	identitySecret []byte
	sessionSecret  []byte
	sessionTTL     time.Duration
}

func NewTokenService(identitySecret, sessionSecret []byte, sessionTTL time.Duration) *TokenService {
	return &TokenService{
		identitySecret: identitySecret,
		sessionSecret:  sessionSecret,
		sessionTTL:     sessionTTL,
	}
}

func (s *TokenService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// VerifyIDToken checks an identity-provider token and returns its claims.
func (s *TokenService) VerifyIDToken(signedToken string) (*IdentityClaims, error) {
	parser := jwt.NewParser(jwt.WithLeeway(30 * time.Second))

	parsedToken, err := parser.ParseWithClaims(signedToken, &IdentityClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.identitySecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(*IdentityClaims)
	if !(ok && parsedToken.Valid) {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token carries no user id")
	}

	return claims, nil
}

// CreateSessionToken mints the session credential stored in the cookie.
func (s *TokenService) CreateSessionToken(userID string) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.sessionSecret)
}

// VerifySessionToken returns the user id a session token was minted for.
func (s *TokenService) VerifySessionToken(signedToken string) (string, error) {
	parser := jwt.NewParser(jwt.WithLeeway(30 * time.Second))

	parsedToken, err := parser.ParseWithClaims(signedToken, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsedToken.Claims.(*sessionClaims)
	if !(ok && parsedToken.Valid) {
		return "", jwt.ErrTokenInvalidClaims
	}

	if claims.Issuer != sessionIssuer {
		return "", fmt.Errorf("invalid issuer")
	}

	return claims.Subject, nil
}
