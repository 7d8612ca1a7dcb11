package configs

import "testing"

func TestGetEnvReturnsValue(t *testing.T) {
	t.Setenv("EKSPEDISI_TEST_KEY", "nilai")

	if got := GetEnv("EKSPEDISI_TEST_KEY"); got != "nilai" {
		t.Fatalf("expected 'nilai', got %q", got)
	}
}

func TestGetEnvFallsBackToDefault(t *testing.T) {
	if got := GetEnv("EKSPEDISI_KEY_TIDAK_ADA", "default"); got != "default" {
		t.Fatalf("expected default value, got %q", got)
	}
}

func TestGetEnvEmptyWithoutDefault(t *testing.T) {
	if got := GetEnv("EKSPEDISI_KEY_TIDAK_ADA"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
