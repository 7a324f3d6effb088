package oidc

import "testing"

func TestUserInfoFromClaims(t *testing.T) {
	claims := map[string]interface{}{
		"sub":            "u1",
		"email":          "a@b.com",
		"email_verified": true,
		"name":           "Ada B",
		"given_name":     "Ada",
		"family_name":    "B",
		"picture":        "https://img.example.com/u1.png",
		"locale":         "en-US",
		"address": map[string]interface{}{
			"locality":    "Berlin",
			"postal_code": "10115",
			"country":     "DE",
		},
		"custom_role": "admin",
	}

	info := userInfoFromClaims(claims)

	if info.Subject != "u1" || info.Email != "a@b.com" || !info.EmailVerified {
		t.Errorf("unexpected core claims: %+v", info)
	}
	if info.Name != "Ada B" || info.GivenName != "Ada" || info.FamilyName != "B" {
		t.Errorf("unexpected name claims: %+v", info)
	}
	if info.Locale != "en-US" {
		t.Errorf("Locale = %q", info.Locale)
	}
	if info.Address == nil {
		t.Fatal("expected address claim to be mapped")
	}
	if info.Address.Locality != "Berlin" || info.Address.PostalCode != "10115" || info.Address.Country != "DE" {
		t.Errorf("unexpected address: %+v", info.Address)
	}
	if info.Raw["custom_role"] != "admin" {
		t.Error("expected non-standard claims to survive in Raw")
	}
}

func TestUserInfoFromClaimsIgnoresWrongTypes(t *testing.T) {
	claims := map[string]interface{}{
		"sub":            42,
		"email_verified": "yes",
		"address":        "not an object",
	}

	info := userInfoFromClaims(claims)

	if info.Subject != "" {
		t.Errorf("Subject = %q, want empty for non-string claim", info.Subject)
	}
	if info.EmailVerified {
		t.Error("EmailVerified should stay false for a non-bool claim")
	}
	if info.Address != nil {
		t.Errorf("Address = %+v, want nil for a non-object claim", info.Address)
	}
	if info.Raw["sub"] != 42 {
		t.Error("Raw should keep the original claim values")
	}
}
