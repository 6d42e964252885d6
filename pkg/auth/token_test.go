package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/forkasbib/restopos-backend/pkg/config"
	"github.com/forkasbib/restopos-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "restopos",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	branchID := int64(3)

	payload := AccessTokenPayload{
		UserID:       17,
		RestaurantID: 42,
		BranchID:     &branchID,
		Role:         enums.StaffRoleAdmin,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 17 {
		t.Fatalf("expected id_vendedor 17, got %d", claims.UserID)
	}
	if claims.RestaurantID != 42 {
		t.Fatalf("expected id_restaurante 42, got %d", claims.RestaurantID)
	}
	if claims.BranchID == nil || *claims.BranchID != branchID {
		t.Fatalf("branch id not preserved")
	}
	if claims.Role != enums.StaffRoleAdmin {
		t.Fatalf("unexpected role %s", claims.Role)
	}

	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "restopos",
		ExpirationMinutes: 10,
	}
	now := time.Now()
	payload := AccessTokenPayload{
		UserID:       1,
		RestaurantID: 2,
		Role:         enums.StaffRoleManager,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token+"x")
	if err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "restopos",
		ExpirationMinutes: 15,
	}
	now := time.Now().Add(-time.Hour)
	payload := AccessTokenPayload{
		UserID:       1,
		RestaurantID: 2,
		Role:         enums.StaffRoleCashier,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenRejectsBadPayloads(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "restopos",
		ExpirationMinutes: 5,
	}
	now := time.Now()

	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 1, RestaurantID: 2, Role: ""}); err == nil {
		t.Fatal("expected invalid role error")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 0, RestaurantID: 2, Role: enums.StaffRoleAdmin}); err == nil {
		t.Fatal("expected missing user id error")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 1, RestaurantID: 0, Role: enums.StaffRoleAdmin}); err == nil {
		t.Fatal("expected missing restaurant id error")
	}
}
