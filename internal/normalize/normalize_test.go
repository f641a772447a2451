package normalize

import "testing"

func TestParseDate_Formats(t *testing.T) {
	cases := []string{
		"2024-03-15 14:30:00",
		"2024-03-15T14:30:00",
		"2024-03-15",
		"03/15/2024",
		"3/15/2024",
	}
	for _, s := range cases {
		d := ParseDate(s)
		if d == nil {
			t.Fatalf("ParseDate(%q) = nil", s)
		}
		if MonthKey(*d) != "2024-03" || DayKey(*d) != "2024-03-15" {
			t.Errorf("ParseDate(%q): month=%q day=%q", s, MonthKey(*d), DayKey(*d))
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "not a date", "2024-13-45", "15/03/2024"} {
		if d := ParseDate(s); d != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", s, d)
		}
	}
}

func TestParseDate_TrimsWhitespace(t *testing.T) {
	if d := ParseDate("  2024-03-15  "); d == nil {
		t.Fatal("expected padded date to parse")
	}
}

func TestOrgName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The American Red Cross of Tulsa", "ARC of Tulsa"},
		{"American Red Cross Central Oklahoma", "ARC Central Oklahoma"},
		{"The Eastern Oklahoma Chapter", "Eastern Oklahoma Chapter"},
		{"Tulsa Chapter", "Tulsa Chapter"},
		{"", ""},
	}
	for _, c := range cases {
		if got := OrgName(c.in); got != c.want {
			t.Errorf("OrgName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(12.34999); got != 12.3 {
		t.Errorf("Round1 = %v", got)
	}
	if got := Round1(7.25); got != 7.3 {
		t.Errorf("Round1 half away = %v", got)
	}
	if got := Round3(0.62349); got != 0.623 {
		t.Errorf("Round3 = %v", got)
	}
	if got := Round4(36.153981); got != 36.154 {
		t.Errorf("Round4 = %v", got)
	}
	if got := Round4(-95.99277749); got != -95.9928 {
		t.Errorf("Round4 negative = %v", got)
	}
}
