package utils

import (
	"errors"
	"testing"

	"vidtube/internal/config"
)

func setConfig(accessMins int) {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "vidtube-test"},
		JWT: config.JWTConfig{
			AccessSecret:      "access-secret",
			AccessExpireMins:  accessMins,
			RefreshSecret:     "refresh-secret",
			RefreshExpireDays: 1,
		},
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword("s3cret!", hash) {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("wrong password must not verify")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setConfig(15)
	token, err := GenerateAccessToken(42, "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" || claims.Issuer != "vidtube-test" {
		t.Fatalf("expected jti and issuer, got %+v", claims.RegisteredClaims)
	}

	other, err := GenerateAccessToken(42, "alice")
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	otherClaims, _ := ParseAccessToken(other)
	if otherClaims.ID == claims.ID {
		t.Fatal("every token needs its own jti")
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	setConfig(15)
	access, _ := GenerateAccessToken(1, "a")
	refresh, _ := GenerateRefreshToken(1)

	if _, err := ParseRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token parsed as refresh: %v", err)
	}
	if _, err := ParseAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token parsed as access: %v", err)
	}
	if _, err := ParseAccessToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage should be invalid: %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	setConfig(-1)
	token, err := GenerateAccessToken(1, "a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseAccessToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}
