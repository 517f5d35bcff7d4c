package identifier

import (
	"strings"
	"testing"
	"time"

	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
)

func TestNew_ProducesCanonicalIDs(t *testing.T) {
	id := New()

	if len(id) != 36 {
		t.Fatalf("expected 36 characters, got %d (%s)", len(id), id)
	}

	if _, err := Parse(string(id)); err != nil {
		t.Fatalf("generated id should parse: %v", err)
	}
}

func TestNew_IDsAreTimeOrdered(t *testing.T) {
	first := New()
	time.Sleep(2 * time.Millisecond)
	second := New()

	if strings.Compare(string(first), string(second)) >= 0 {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestParse_RejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"short", "abc"},
		{"not a uuid", strings.Repeat("x", 36)},
		{"uuid v4", "9b2b9c70-58cc-4372-a567-0e02b2c3d479"},
		{"uppercase", strings.ToUpper(string(New()))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.value)
			if err == nil {
				t.Fatalf("expected error for %q", tc.value)
			}

			domainErr, ok := commonerrors.AsDomainError(err)
			if !ok || domainErr.Code() != commonerrors.ErrInvalidIDFormat.Code() {
				t.Errorf("expected invalid id format error, got %v", err)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	id := New()

	parsed, err := Parse(string(id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("expected %s, got %s", id, parsed)
	}
}
