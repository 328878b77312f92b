package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeGenerate permiso que exige la API de generación.
const ScopeGenerate = "definitions:generate"

// Claims token de servicio: Subject identifica al cliente (p. ej. un job de onboarding).
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Generate firma un token HS256 para subject con la vigencia dada.
func Generate(secret, subject, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("jwt: subject vacío")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("jwt: vigencia inválida %s", ttl)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: ScopeGenerate,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma, expiración, emisor (si issuer no está vacío) y scope.
// Devuelve el subject del token.
func Parse(secret, issuer, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("claims inválidos")
	}
	if claims.Scope != ScopeGenerate {
		return "", fmt.Errorf("scope %q no permitido", claims.Scope)
	}
	return claims.Subject, nil
}
