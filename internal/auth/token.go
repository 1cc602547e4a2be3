package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields this application reads from a verified access
// token. The auth service issues the token; we only check its signature.
type TokenClaims struct {
	Subject string
	Email   string
}

// VerifyAccessToken validates an HS256 access token issued by the auth
// service against the shared secret and extracts the claims the dashboard
// guard needs.
func VerifyAccessToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	out := &TokenClaims{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	return out, nil
}
