package model

import "testing"

func TestParseCategory(t *testing.T) {
	cases := []struct {
		label string
		want  Category
		ok    bool
	}{
		{"Fire with RC Care", CategoryCare, true},
		{"Fire with RC Notification", CategoryNotification, true},
		{"Fire without RC Notification", CategoryGap, true},
		{"  Fire with RC Care  ", CategoryCare, true},
		{"fire with rc care", 0, false}, // case sensitive
		{"Structure Fire", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseCategory(c.label)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseCategory(%q) = %v, %v", c.label, got, ok)
		}
	}
}

func TestCategoryCodes(t *testing.T) {
	// The integer values are the compact category codes in the points
	// document and must not drift.
	if CategoryCare != 0 || CategoryNotification != 1 || CategoryGap != 2 {
		t.Errorf("codes = %d/%d/%d", CategoryCare, CategoryNotification, CategoryGap)
	}
}

func TestCountsInvariant(t *testing.T) {
	var c Counts
	for _, cat := range []Category{CategoryCare, CategoryGap, CategoryGap, CategoryNotification} {
		c.Add(cat)
	}
	if c.Total != c.Care+c.Notification+c.Gap {
		t.Errorf("invariant broken: %+v", c)
	}
	if c.Care != 1 || c.Notification != 1 || c.Gap != 2 || c.Total != 4 {
		t.Errorf("counts = %+v", c)
	}
}

func TestAddressFields_Order(t *testing.T) {
	r := IncidentRow{
		Address:          "a",
		NFIRSAddress:     "b",
		RCRespondAddress: "c",
		RCCareAddress:    "d",
	}
	if got := r.AddressFields(); got != [4]string{"a", "b", "c", "d"} {
		t.Errorf("fields = %v", got)
	}
}
