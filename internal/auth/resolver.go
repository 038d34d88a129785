package auth

import (
	"log"

	"github.com/labstack/echo/v4"

	"concord/internal/database"
	"concord/internal/models"
)

// Resolver turns a request's session cookie into an application Profile.
// Every failure path returns nil: callers treat nil as unauthenticated and
// decide between a 401 and a redirect.
type Resolver struct {
	tokens *TokenService
	db     database.Service
}

func NewResolver(tokens *TokenService, db database.Service) *Resolver {
	return &Resolver{tokens: tokens, db: db}
}

func (r *Resolver) CurrentProfile(c echo.Context) *models.Profile {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	userID, err := r.tokens.VerifySessionToken(cookie.Value)
	if err != nil {
		return nil
	}

	profile, err := r.db.GetProfileByUserID(userID)
	if err != nil {
		log.Println("resolving profile:", err)
		return nil
	}

	return profile
}

// EnsureProfile is the bootstrap path: it loads the profile matching the
// identity claims, creating it on first sign-in.
func (r *Resolver) EnsureProfile(claims *IdentityClaims) (*models.Profile, error) {
	profile, err := r.db.GetProfileByUserID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}

	return r.db.CreateProfile(models.Profile{
		UserID:   claims.Subject,
		Name:     name,
		ImageURL: claims.Picture,
		Email:    claims.Email,
	})
}
