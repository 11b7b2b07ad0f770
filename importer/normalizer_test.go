package importer

import "testing"

func TestNormalizeDate_CoercesToIso(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024-1-5", "2024-01-05"},
		{"  2024-01-05  ", "2024-01-05"},
		{"05.01.2024", "2024-01-05"},
		{"31.12.2024", "2024-12-31"},
		{"2024/01/05", "2024-01-05"},
	}
	for _, tc := range cases {
		if got := NormalizeDate(tc.in); got != tc.expected {
			t.Fatalf("NormalizeDate(%q) expected %s, got %s", tc.in, tc.expected, got)
		}
	}
}

func TestNormalizeDate_EmptyStaysEmpty(t *testing.T) {
	if got := NormalizeDate("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestNormalizeDate_UnparseableReturnsVerbatim(t *testing.T) {
	if got := NormalizeDate("скоро"); got != "скоро" {
		t.Fatalf("expected verbatim passthrough, got %q", got)
	}
}
