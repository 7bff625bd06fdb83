package env

import "testing"

func TestFirstPrefersEarlierKeys(t *testing.T) {
	t.Setenv("STORESVC_TEST_A", "")
	t.Setenv("STORESVC_TEST_B", "b")
	t.Setenv("STORESVC_TEST_C", "c")

	if got := First("x", "STORESVC_TEST_A", "STORESVC_TEST_B", "STORESVC_TEST_C"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := First("x", "STORESVC_TEST_MISSING"); got != "x" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestLogFormat(t *testing.T) {
	t.Setenv("STORESVC_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "Console")
	if got := LogFormat(); got != "console" {
		t.Fatalf("expected console, got %q", got)
	}
	t.Setenv("STORESVC_LOG_FORMAT", "json")
	if got := LogFormat(); got != "json" {
		t.Fatalf("expected prefixed key to win, got %q", got)
	}
}
