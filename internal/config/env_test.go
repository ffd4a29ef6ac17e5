package config

import "testing"

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

func TestFloatEnvOrDefault(t *testing.T) {
	t.Setenv("FLOAT_TEST", "")
	if got := floatEnvOrDefault("FLOAT_TEST", 200); got != 200 {
		t.Fatalf("expected default when unset, got %v", got)
	}

	t.Setenv("FLOAT_TEST", "150.5")
	if got := floatEnvOrDefault("FLOAT_TEST", 200); got != 150.5 {
		t.Fatalf("expected 150.5, got %v", got)
	}

	t.Setenv("FLOAT_TEST", "-3")
	if got := floatEnvOrDefault("FLOAT_TEST", 200); got != 200 {
		t.Fatalf("expected default for non-positive value, got %v", got)
	}

	t.Setenv("FLOAT_TEST", "abc")
	if got := floatEnvOrDefault("FLOAT_TEST", 200); got != 200 {
		t.Fatalf("expected default for unparsable value, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "13")
	if got := intEnvOrDefault("INT_TEST", 1); got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}

	t.Setenv("INT_TEST", "0")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default for zero, got %d", got)
	}
}
