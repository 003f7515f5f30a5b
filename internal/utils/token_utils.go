package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorClaims are the claims carried by an access token issued to a till operator.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

const operatorScope = "pos:operator"

// GenerateJWT signs an HS256 access token for operatorID.
func GenerateJWT(operatorID string, secret string, ttl time.Duration, issuer string) (string, error) {
	if operatorID == "" {
		return "", fmt.Errorf("operator id is required")
	}
	now := time.Now()
	claims := OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operatorID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Scope: operatorScope,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAndValidateJWT verifies signature, time claims and scope of an operator token.
func ParseAndValidateJWT(tokenString string, secret string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Scope != operatorScope {
		return nil, fmt.Errorf("%w: unexpected scope %q", jwt.ErrTokenInvalidClaims, claims.Scope)
	}
	return claims, nil
}
