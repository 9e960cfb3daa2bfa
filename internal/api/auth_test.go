// ABOUTME: Tests for account mapping from the backend user representation
// ABOUTME: Covers the display-name derivation chain

package api

import "testing"

func TestDisplayNameFromNames(t *testing.T) {
	account := mapAPIUser(apiUser{Username: "amina", Email: "a@b.com", FirstName: "Amina", LastName: "Juma"})
	if account.DisplayName != "Amina Juma" {
		t.Errorf("expected Amina Juma, got %s", account.DisplayName)
	}
}

func TestDisplayNameSingleNameTrimmed(t *testing.T) {
	account := mapAPIUser(apiUser{Username: "amina", FirstName: "Amina"})
	if account.DisplayName != "Amina" {
		t.Errorf("expected trimmed single name, got %q", account.DisplayName)
	}
}

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	account := mapAPIUser(apiUser{Username: "amina", Email: "a@b.com"})
	if account.DisplayName != "amina" {
		t.Errorf("expected username fallback, got %s", account.DisplayName)
	}
}

func TestDisplayNameFallsBackToEmail(t *testing.T) {
	account := mapAPIUser(apiUser{Email: "a@b.com"})
	if account.DisplayName != "a@b.com" {
		t.Errorf("expected email fallback, got %s", account.DisplayName)
	}
}
