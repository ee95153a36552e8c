package jwtsign

import (
	"errors"
	"testing"
	"time"
)

func TestExpirationSeconds(t *testing.T) {
	cases := map[Expiration]int64{
		ExpirationShort:   1200,
		ExpirationLong:    15777000,
		ExpirationWebinar: 7000000,
	}
	for exp, want := range cases {
		if got := exp.Seconds(); got != want {
			t.Fatalf("expected %d seconds, got %d", want, got)
		}
	}
}

func TestNewClaims(t *testing.T) {
	now := time.Unix(1700000000, 999_999_999)
	floor := time.Unix(1700000000, 0)

	cases := []struct {
		aud     Audience
		wantIat time.Time
		wantExp time.Time
	}{
		{AudienceStoreConnect, time.Time{}, floor.Add(1200 * time.Second)},
		{AudienceService, floor, floor.Add(15777000 * time.Second)},
		{AudiencePush, floor, time.Time{}},
		{AudienceWebinar, time.Time{}, floor.Add(7000000 * time.Second)},
	}
	for _, tc := range cases {
		t.Run(tc.aud.String(), func(t *testing.T) {
			claims, err := NewClaims(tc.aud, "issuer", now)
			if err != nil {
				t.Fatalf("NewClaims: %v", err)
			}
			if claims.Issuer != "issuer" {
				t.Fatalf("unexpected issuer: %s", claims.Issuer)
			}
			if !claims.IssuedAt.Equal(tc.wantIat) {
				t.Fatalf("unexpected iat: got %v, want %v", claims.IssuedAt, tc.wantIat)
			}
			if !claims.ExpiresAt.Equal(tc.wantExp) {
				t.Fatalf("unexpected exp: got %v, want %v", claims.ExpiresAt, tc.wantExp)
			}
		})
	}
}

func TestClaimsToken_OmitsZeroTimes(t *testing.T) {
	claims, err := NewClaims(AudiencePush, "team", time.Now())
	if err != nil {
		t.Fatalf("NewClaims: %v", err)
	}
	tok, err := claims.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if !tok.Expiration().IsZero() {
		t.Fatalf("expected no exp, got %v", tok.Expiration())
	}
	if len(tok.Audience()) != 0 {
		t.Fatalf("expected no aud, got %v", tok.Audience())
	}
}

func TestParseAudience(t *testing.T) {
	for _, aud := range []Audience{AudienceStoreConnect, AudienceService, AudiencePush, AudienceWebinar} {
		got, err := ParseAudience(aud.String())
		if err != nil {
			t.Fatalf("ParseAudience(%q): %v", aud.String(), err)
		}
		if got != aud {
			t.Fatalf("ParseAudience(%q) = %v", aud.String(), got)
		}
	}
	if got, err := ParseAudience(" APNS "); err != nil || got != AudiencePush {
		t.Fatalf("expected case-insensitive match, got %v, %v", got, err)
	}

	_, err := ParseAudience("github")
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrCodeInvalidInput {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHeaders(t *testing.T) {
	cases := []struct {
		aud     Audience
		wantTyp bool
		wantKid bool
	}{
		{AudienceStoreConnect, true, true},
		{AudienceService, true, true},
		{AudiencePush, false, true},
		{AudienceWebinar, true, false},
	}
	for _, tc := range cases {
		hdrs, err := headers(tc.aud, "kid-1")
		if err != nil {
			t.Fatalf("%s: headers: %v", tc.aud, err)
		}
		if got := hdrs.Type() == "JWT"; got != tc.wantTyp {
			t.Fatalf("%s: typ set = %v, want %v", tc.aud, got, tc.wantTyp)
		}
		if got := hdrs.KeyID() == "kid-1"; got != tc.wantKid {
			t.Fatalf("%s: kid set = %v, want %v", tc.aud, got, tc.wantKid)
		}
	}
}
