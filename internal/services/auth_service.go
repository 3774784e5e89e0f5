package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	apperrors "landmark-catalog/internal/pkg/errors"

	"github.com/golang-jwt/jwt"
)

const (
	bearerPrefix = "Bearer "
	AdminRole    = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

// CredentialVerifier decides whether an Authorization header value grants
// admin privileges. Rejections wrap errors.ErrInsufficientPermission.
type CredentialVerifier interface {
	VerifyAdmin(ctx context.Context, authorization string) error
}

// StaticTokenVerifier accepts exactly "Bearer <token>".
type StaticTokenVerifier struct {
	expected []byte
}

func NewStaticTokenVerifier(token string) *StaticTokenVerifier {
	return &StaticTokenVerifier{expected: []byte(bearerPrefix + token)}
}

func (v *StaticTokenVerifier) VerifyAdmin(ctx context.Context, authorization string) error {
	if subtle.ConstantTimeCompare([]byte(authorization), v.expected) != 1 {
		return apperrors.ErrInsufficientPermission
	}
	return nil
}

// JWTVerifier accepts an HS256 bearer token signed with the shared secret
// whose "role" claim is admin.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) VerifyAdmin(ctx context.Context, authorization string) error {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return apperrors.ErrInsufficientPermission
	}
	tokenString := strings.TrimPrefix(authorization, bearerPrefix)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %w", apperrors.ErrInsufficientPermission, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != AdminRole {
		return apperrors.ErrInsufficientPermission
	}
	return nil
}

// IssueAdminToken signs a token JWTVerifier accepts. expiresAt is a unix
// timestamp; zero means no expiry.
func (v *JWTVerifier) IssueAdminToken(subject string, expiresAt int64) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": AdminRole,
	}
	if expiresAt > 0 {
		claims["exp"] = expiresAt
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// ChainVerifier accepts a credential if any of its verifiers does.
type ChainVerifier []CredentialVerifier

func (c ChainVerifier) VerifyAdmin(ctx context.Context, authorization string) error {
	for _, v := range c {
		if err := v.VerifyAdmin(ctx, authorization); err == nil {
			return nil
		}
	}
	return apperrors.ErrInsufficientPermission
}
