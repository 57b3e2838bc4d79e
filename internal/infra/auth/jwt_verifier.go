package auth

import (
	"context"
	"errors"
	"strings"

	"chefbazaar/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
)

// HS256 のIDトークンを検証する。
// issuer / audience は空なら検証しない
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTVerifier(secret string, issuer string, audience string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

var _ usecase.TokenVerifier = (*JWTVerifier)(nil)

type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) Verify(ctx context.Context, credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", usecase.ErrInvalidCredential
	}

	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", usecase.ErrInvalidCredential
	}

	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return "", usecase.ErrInvalidCredential
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return "", usecase.ErrInvalidCredential
	}

	// 未確認のメールは受け付けない
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return "", usecase.ErrInvalidCredential
	}
	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return "", usecase.ErrInvalidCredential
	}
	return email, nil
}
