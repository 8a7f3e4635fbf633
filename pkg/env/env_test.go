package env

import "testing"

func TestGetFallsBack(t *testing.T) {
	t.Setenv("WISHLIST_ENV_TEST", "  ")
	if got := Get("WISHLIST_ENV_TEST", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for blank value, got %q", got)
	}
	t.Setenv("WISHLIST_ENV_TEST", "value")
	if got := Get("WISHLIST_ENV_TEST", "fallback"); got != "value" {
		t.Fatalf("expected value, got %q", got)
	}
}

func TestFirstPicksEarliestSetKey(t *testing.T) {
	t.Setenv("WISHLIST_ENV_A", "")
	t.Setenv("WISHLIST_ENV_B", "8080")
	if got := First("5000", "WISHLIST_ENV_A", "WISHLIST_ENV_B"); got != "8080" {
		t.Fatalf("expected 8080, got %q", got)
	}
	if got := First("5000", "WISHLIST_ENV_A"); got != "5000" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
