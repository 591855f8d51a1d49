package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	EntityTypeUser  = "user"
	EntityTypeAdmin = "admin"
)

type TokenClaims struct {
	EntityID   string `json:"entityID"`
	EntityType string `json:"entityType"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the bearer tokens used as session
// credentials for both users and admins; the entity type claim is what the
// auth middleware discriminates principals on.
type TokenService struct {
	accessTokenSecret []byte
	accessTokenExpiry time.Duration
}

func NewTokenService(accessTokenSecret string, accessTokenExpiryInSecs int64) *TokenService {
	return &TokenService{
		accessTokenSecret: []byte(accessTokenSecret),
		accessTokenExpiry: time.Duration(accessTokenExpiryInSecs) * time.Second,
	}
}

func (ts *TokenService) GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		EntityID:   entityID.String(),
		EntityType: entityType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		claims,
	)

	tokenStr, err := token.SignedString(ts.accessTokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenStr, nil
}

// ValidateAccessToken reports whether tokenStr is a well formed, unexpired
// token signed with this service's secret. Malformed and expired tokens are
// not errors; they are simply invalid.
func (ts *TokenService) ValidateAccessToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	parsedClaims := new(TokenClaims)

	token, err := jwt.ParseWithClaims(
		tokenStr,
		parsedClaims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}

			return ts.accessTokenSecret, nil
		},
	)
	if err != nil || !token.Valid {
		return false, nil, nil
	}

	return true, parsedClaims, nil
}
