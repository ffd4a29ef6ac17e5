package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestUpstreamErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		err  *UpstreamError
		want string
	}{
		{
			name: "with status",
			err:  &UpstreamError{Source: "espn", StatusCode: 503, Message: "scraper down"},
			want: "espn: scraper down (status=503)",
		},
		{
			name: "without status",
			err:  &UpstreamError{Source: "yahoo", Message: "request failed"},
			want: "yahoo: request failed",
		},
		{
			name: "default message",
			err:  &UpstreamError{Source: "espn"},
			want: "espn: upstream fetch failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAsUpstreamErrorUnwrapsWrapped(t *testing.T) {
	inner := &UpstreamError{Source: "espn", StatusCode: 429}
	wrapped := fmt.Errorf("refresh failed: %w", inner)

	got, ok := AsUpstreamError(wrapped)
	if !ok || got.StatusCode != 429 {
		t.Fatalf("expected unwrap to 429, got %v ok=%v", got, ok)
	}

	if _, ok := AsUpstreamError(errors.New("plain")); ok {
		t.Fatal("expected plain error not to match")
	}
}

func TestUpstreamErrorUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UpstreamError{Source: "espn", Message: "request failed", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
}
