package fakeapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidToken = errors.New("invalid token")

type portalClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	Handle string `json:"handle,omitempty"`
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (t tokenIssuer) issue(identity models.Identity, now time.Time) (string, *portalClaims, error) {
	claims := &portalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role:   identity.Role.String(),
		Handle: identity.DisplayHandle,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

func (t tokenIssuer) validate(token string, now time.Time) (*portalClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &portalClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return nil, errInvalidToken
	}
	claims, ok := parsed.Claims.(*portalClaims)
	if !ok || !parsed.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func (c *portalClaims) identity() models.Identity {
	return models.Identity{ID: c.Subject, Role: models.Role(c.Role), DisplayHandle: c.Handle}
}
