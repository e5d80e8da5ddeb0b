package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieIssuer = "todo-app"

// CookieSigner firma el token de sesion antes de mandarlo en la cookie, asi
// una cookie alterada se rechaza sin consultar el session store.
type CookieSigner struct {
	secret []byte
	issuer string
}

type cookieClaims struct {
	jwt.RegisteredClaims
}

func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{
		secret: []byte(secret),
		issuer: cookieIssuer,
	}
}

// Sign devuelve el valor de la cookie para token, valido hasta expiresAt.
func (s *CookieSigner) Sign(token string, expiresAt time.Time) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return "", ErrInvalidCookie
	}
	claims := cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        token,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify devuelve el token de sesion contenido en value.
func (s *CookieSigner) Verify(value string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrInvalidCookie
	}
	if strings.TrimSpace(value) == "" {
		return "", ErrNoSession
	}
	var claims cookieClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(value, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrSessionNotFound
		}
		return "", ErrInvalidCookie
	}
	if strings.TrimSpace(claims.ID) == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
