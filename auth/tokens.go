// Package auth issues and verifies the signed bearer tokens used by
// the API: short-lived access tokens carrying the user's identity and
// role, and longer-lived refresh tokens used solely to mint new access
// tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rpupo63/portfolio-site-backend/models"
)

const (
	tokenIssuer   = "portfolio-api"
	tokenAudience = "portfolio-web"

	refreshTokenType = "refresh"
)

// Verification failure kinds. Callers distinguish expired from
// malformed from everything-else for client messaging.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrNotRefresh     = errors.New("not a refresh token")
)

// AccessClaims are the claims embedded in an access token.
type AccessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the numeric user id.
func (c *AccessClaims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("parsing subject claim: %w", err)
	}
	return id, nil
}

// RefreshClaims are the claims embedded in a refresh token. TokenType
// must be "refresh"; an otherwise valid token with a different type is
// rejected.
type RefreshClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into the numeric user id.
func (c *RefreshClaims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("parsing subject claim: %w", err)
	}
	return id, nil
}

// TokenService signs and verifies tokens with a single HS256 secret.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a TokenService. accessHours defaults to 24
// and refreshHours to 168 when non-positive.
func NewTokenService(secret string, accessHours, refreshHours int) *TokenService {
	if accessHours <= 0 {
		accessHours = 24
	}
	if refreshHours <= 0 {
		refreshHours = 7 * 24
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessHours) * time.Hour,
		refreshTTL: time.Duration(refreshHours) * time.Hour,
	}
}

// IssueAccessToken signs an access token embedding the user's id,
// username and role.
func (s *TokenService) IssueAccessToken(user models.User) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken signs a refresh token embedding the user's id and
// the refresh type marker.
func (s *TokenService) IssueRefreshToken(user models.User) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccess validates signature and expiry and returns the decoded
// claims. Failures map onto ErrTokenExpired, ErrTokenMalformed or
// ErrTokenInvalid.
func (s *TokenService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and additionally rejects
// tokens whose embedded type is not "refresh" (an access token must
// not be usable to mint new access tokens).
func (s *TokenService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if claims.TokenType != refreshTokenType {
		return nil, ErrNotRefresh
	}
	return claims, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	return s.secret, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}
}
