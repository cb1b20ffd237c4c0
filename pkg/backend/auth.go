package backend

import (
	"errors"
	"strings"
	"time"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned when an access token cannot be validated.
var ErrInvalidToken = errors.New("could not validate credentials")

// HashPassword hashes the password using bcrypt.
func HashPassword(password string) (string, error) {
	crypt, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(crypt), nil
}

// VerifyPassword verifies the password against the hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateAccessToken issues a signed access token for user that expires
// after ttl. A non-positive ttl uses the configured lifetime.
func (d *Backend) GenerateAccessToken(user proto.User, ttl time.Duration) (string, time.Time, error) {
	if d.cfg.Auth.JWTSecret == "" {
		return "", time.Time{}, errors.New("missing jwt secret")
	}
	if ttl <= 0 {
		ttl = d.cfg.AccessTokenTTL()
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   user.Email(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    d.cfg.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(d.cfg.Auth.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// parseAccessToken validates bearer and returns its claims.
func (d *Backend) parseAccessToken(bearer string) (*jwt.RegisteredClaims, error) {
	if d.cfg.Auth.JWTSecret == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(bearer, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}

		return []byte(d.cfg.Auth.JWTSecret), nil
	},
		jwt.WithIssuer(d.cfg.Name),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		d.logger.Debug("failed to parse jwt", "err", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !token.Valid || !ok || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
