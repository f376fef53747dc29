// Package stafftoken verifies HS256 access tokens minted by the platform
// auth service. The gateway never issues tokens in production; Issue exists
// for the dev tokengen tool and tests only.
package stafftoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "bibliodesk/pkg/domain-errors"
	"bibliodesk/pkg/platform/middleware/auth"
)

// staffClaims mirrors the claims the auth service puts in staff tokens.
type staffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates staff access tokens against a shared signing key.
type Verifier struct {
	signingKey []byte
}

var _ auth.Verifier = (*Verifier)(nil)

// NewVerifier creates a token verifier for the given HS256 signing key.
func NewVerifier(signingKey string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey)}
}

// Verify parses and validates the token, returning the operator claims.
func (v *Verifier) Verify(tokenString string) (*auth.Claims, error) {
	claims := &staffClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token validation failed")
	}
	if !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token missing subject")
	}

	return &auth.Claims{
		OperatorID: subject,
		Role:       claims.Role,
	}, nil
}

// Issue mints a staff token with the same claims shape Verify expects.
func Issue(signingKey, operatorID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := staffClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign staff token")
	}
	return signed, nil
}
