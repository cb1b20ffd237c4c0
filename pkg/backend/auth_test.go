package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/matryer/is"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "" {
		t.Fatal("hash is empty")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPassword("password", hash) {
		t.Fatal("password did not verify")
	}
	if VerifyPassword("Password", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestAccessToken(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := createUser(t, ctx, be, "alice@example.com")

	token, expiresAt, err := be.GenerateAccessToken(u, 0)
	is.NoErr(err)
	is.True(time.Until(expiresAt) > 29*time.Minute)
	is.True(time.Until(expiresAt) <= 30*time.Minute)

	got, err := be.UserByAccessToken(ctx, token)
	is.NoErr(err)
	is.Equal(got.ID(), u.ID())

	_, err = be.UserByAccessToken(ctx, token+"x")
	is.True(errors.Is(err, ErrInvalidToken))

	_, err = be.UserByAccessToken(ctx, "not-a-jwt")
	is.True(errors.Is(err, ErrInvalidToken))
}

func TestAccessTokenRejected(t *testing.T) {
	ctx, be := setup(t)
	u := createUser(t, ctx, be, "alice@example.com")

	sign := func(claims jwt.RegisteredClaims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	now := time.Now()
	cases := map[string]string{
		"expired": sign(jwt.RegisteredClaims{
			Subject:   u.Email(),
			Issuer:    be.cfg.Name,
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}, be.cfg.Auth.JWTSecret),
		"no expiry": sign(jwt.RegisteredClaims{
			Subject:  u.Email(),
			Issuer:   be.cfg.Name,
			IssuedAt: jwt.NewNumericDate(now),
		}, be.cfg.Auth.JWTSecret),
		"wrong secret": sign(jwt.RegisteredClaims{
			Subject:   u.Email(),
			Issuer:    be.cfg.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}, "other"),
		"wrong issuer": sign(jwt.RegisteredClaims{
			Subject:   u.Email(),
			Issuer:    "someone-else",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}, be.cfg.Auth.JWTSecret),
		"unknown subject": sign(jwt.RegisteredClaims{
			Subject:   "ghost@example.com",
			Issuer:    be.cfg.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}, be.cfg.Auth.JWTSecret),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			_, err := be.UserByAccessToken(ctx, token)
			is.True(errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestInactiveUser(t *testing.T) {
	is := is.New(t)
	ctx, be := setup(t)
	u := createUser(t, ctx, be, "alice@example.com")

	token, _, err := be.GenerateAccessToken(u, time.Hour)
	is.NoErr(err)

	is.NoErr(be.SetUserActive(ctx, "ALICE@example.com", false))

	_, err = be.UserByAccessToken(ctx, token)
	is.True(errors.Is(err, proto.ErrInactiveUser))

	_, err = be.Authenticate(ctx, "alice@example.com", "password123")
	is.True(errors.Is(err, proto.ErrInactiveUser))

	err = be.SetUserActive(ctx, "ghost@example.com", true)
	is.True(errors.Is(err, proto.ErrUserNotFound))
}
