package version

import (
	"strings"
	"testing"
)

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestStringContainsVersion(t *testing.T) {
	if s := String(); !strings.Contains(s, Version) {
		t.Fatalf("String() = %q does not contain Version %q", s, Version)
	}
}
