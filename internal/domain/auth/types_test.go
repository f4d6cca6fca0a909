package auth

import (
	"testing"
	"time"
)

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" college_admin "); !ok || r != RoleCollegeAdmin {
		t.Fatalf("ParseRole() = %q, %v", r, ok)
	}
	if _, ok := ParseRole("guest"); ok {
		t.Fatalf("guest must not be a valid role")
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	p := &Principal{Role: RoleAdmin}
	if !p.HasRole(RoleCollegeAdmin, RoleAdmin) {
		t.Fatalf("expected admin to match")
	}
	if p.HasRole(RoleStudent) {
		t.Fatalf("did not expect student")
	}
	var nilP *Principal
	if nilP.HasRole(RoleAdmin) {
		t.Fatalf("nil principal has no roles")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if (Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("future expiry reported as expired")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expiry at now must be expired")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@X.com "); got != "ana@x.com" {
		t.Fatalf("NormalizeEmail() = %q", got)
	}
}

func TestProofAttempt_KindsOrder(t *testing.T) {
	kinds := ProofAttempt{SessionID: "s", Token: "t"}.Kinds()
	if len(kinds) != 2 || kinds[0] != ProofFederated || kinds[1] != ProofToken {
		t.Fatalf("unexpected order: %v", kinds)
	}
	if !(ProofAttempt{}).Empty() {
		t.Fatalf("zero attempt should be empty")
	}
}
