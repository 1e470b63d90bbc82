package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2000000", 2000000},
		{" 1500 ", 1500},
		{"2,500,000", 2500000},
		{"1234.56", 1234},
		{"", 0},
		{"abc", 0},
		{"12x", 0},
		{"-150", -150},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "₫0"},
		{500, "₫500"},
		{2780000, "₫2,780,000"},
		{100000, "₫100,000"},
		{-300000, "-₫300,000"},
	}
	for _, tc := range cases {
		if got := (Money{Dong: tc.in}).Format(); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03", "2024-03", true},
		{"2024-03-15", "2024-03", true},
		{"2024-03-15T10:04:05Z", "2024-03", true},
		{" 2024-12 ", "2024-12", true},
		{"03-2024", "", false},
		{"", "", false},
		{"2024", "", false},
	}
	for _, tc := range cases {
		m, err := ParseMonth(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseMonth(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseMonth(%q) expected error", tc.in)
			}
			continue
		}
		if m.String() != tc.want {
			t.Fatalf("ParseMonth(%q) = %q, want %q", tc.in, m.String(), tc.want)
		}
	}
}

func TestMonthOrdering(t *testing.T) {
	jan := NewMonth(2024, 1)
	feb := NewMonth(2024, 2)
	if !jan.Before(feb) {
		t.Fatal("2024-01 should sort before 2024-02")
	}
	if feb.Before(jan) {
		t.Fatal("2024-02 should not sort before 2024-01")
	}
}
