package service

import (
	"errors"
	"testing"
	"time"
)

const testCookieSecret = "0123456789abcdef0123456789abcdef"

func TestCookieSigner_RoundTrip(t *testing.T) {
	signer := NewCookieSigner(testCookieSecret)

	value, err := signer.Sign("raw-token", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if value == "raw-token" {
		t.Fatalf("expected signed value")
	}
	token, err := signer.Verify(value)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if token != "raw-token" {
		t.Fatalf("expected raw-token, got %s", token)
	}
}

func TestCookieSigner_RejectsTampering(t *testing.T) {
	signer := NewCookieSigner(testCookieSecret)
	other := NewCookieSigner("ffffffffffffffffffffffffffffffff")

	value, err := other.Sign("raw-token", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(value); !errors.Is(err, ErrInvalidCookie) {
		t.Fatalf("expected ErrInvalidCookie for foreign signature, got %v", err)
	}
	if _, err := signer.Verify("raw-token"); !errors.Is(err, ErrInvalidCookie) {
		t.Fatalf("expected ErrInvalidCookie for unsigned value, got %v", err)
	}
}

func TestCookieSigner_Expired(t *testing.T) {
	signer := NewCookieSigner(testCookieSecret)
	value, err := signer.Sign("raw-token", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := signer.Verify(value); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired cookie to be treated as missing session, got %v", err)
	}
}

func TestCookieSigner_EmptyInputs(t *testing.T) {
	signer := NewCookieSigner(testCookieSecret)
	if _, err := signer.Verify(""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := signer.Sign(" ", time.Now().Add(time.Hour)); err == nil {
		t.Fatalf("expected error signing empty token")
	}
	if _, err := NewCookieSigner("").Sign("t", time.Now().Add(time.Hour)); err == nil {
		t.Fatalf("expected error without secret")
	}
}
