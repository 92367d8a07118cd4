package utils

import "testing"

func TestParseBusinessDate(t *testing.T) {
	d, err := ParseBusinessDate("2026-06-10")
	if err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if d.Year() != 2026 || int(d.Month()) != 6 || d.Day() != 10 {
		t.Fatalf("parsed wrong date: %s", d)
	}

	for _, bad := range []string{"", "10-06-2026", "2026/06/10", "June 10th", "2026-13-01"} {
		if _, err := ParseBusinessDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
