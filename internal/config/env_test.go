package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", " a, ,b ")
	got := listEnvOrDefault("LIST_TEST", "x")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
	t.Setenv("LIST_TEST", "")
	if got := listEnvOrDefault("LIST_TEST", "x"); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected default list, got %v", got)
	}
}

func TestOneOf(t *testing.T) {
	if got := oneOf(" Redis ", "memory", "memory", "redis"); got != "redis" {
		t.Fatalf("expected redis, got %s", got)
	}
	if got := oneOf("disk", "memory", "memory", "redis"); got != "memory" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestDurationAndIntEnv(t *testing.T) {
	t.Setenv("DUR_TEST", "-5s")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != time.Second {
		t.Fatalf("expected default for negative duration, got %s", got)
	}
	t.Setenv("INT_TEST", "abc")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default for bad int, got %d", got)
	}
}
