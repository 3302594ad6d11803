package core

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"01-11-2025", true},
		{"31-12-2025", true},
		{"29-02-2024", true},  // leap day
		{"29-02-2025", false}, // not a leap year
		{"32-01-2025", false},
		{"01-13-2025", false},
		{"1-1-2025", false}, // must be zero padded
		{"2025-01-01", false},
		{"", false},
	}
	for i, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q) expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q) expected error", i, tc.in)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, 11, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"05-11-2025"` {
		t.Fatalf("expected \"05-11-2025\", got %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
	if err := json.Unmarshal([]byte(`"99-99-2025"`), &back); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{
		Description: "Nov rent",
		PaymentDate: NewDate(2025, 11, 1),
		Value:       Money{Cents: 120000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Entry{
		{Description: "a", Value: Money{Cents: 1}}, // zero date
		{Description: "", PaymentDate: NewDate(2025, 1, 1), Value: Money{Cents: 1}},
		{Description: "   ", PaymentDate: NewDate(2025, 1, 1), Value: Money{Cents: 1}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategorySortAndRecompute(t *testing.T) {
	c := Category{
		Name: "Rent",
		Entries: []Entry{
			{Description: "late fee", PaymentDate: NewDate(2025, 11, 20), Value: Money{Cents: 5000}},
			{Description: "rent", PaymentDate: NewDate(2025, 11, 5), Value: Money{Cents: 120000}},
			{Description: "deposit", PaymentDate: NewDate(2025, 11, 1), Value: Money{Cents: 10000}},
		},
	}
	c.SortEntries()
	c.Recompute()

	wantOrder := []string{"deposit", "rent", "late fee"}
	for i, desc := range wantOrder {
		if c.Entries[i].Description != desc {
			t.Fatalf("position %d expected %q, got %q", i, desc, c.Entries[i].Description)
		}
	}
	if c.Total.Cents != 135000 {
		t.Fatalf("expected total 135000, got %d", c.Total.Cents)
	}

	earliest, ok := c.EarliestDate()
	if !ok || earliest.String() != "01-11-2025" {
		t.Fatalf("expected earliest 01-11-2025, got %v (ok=%v)", earliest, ok)
	}
}

func TestCategorySortStable(t *testing.T) {
	// Same-day entries keep insertion order.
	c := Category{
		Name: "Food",
		Entries: []Entry{
			{Description: "breakfast", PaymentDate: NewDate(2025, 11, 2), Value: Money{Cents: 800}},
			{Description: "lunch", PaymentDate: NewDate(2025, 11, 2), Value: Money{Cents: 1500}},
			{Description: "dinner", PaymentDate: NewDate(2025, 11, 2), Value: Money{Cents: 2000}},
		},
	}
	c.SortEntries()
	for i, desc := range []string{"breakfast", "lunch", "dinner"} {
		if c.Entries[i].Description != desc {
			t.Fatalf("position %d expected %q, got %q", i, desc, c.Entries[i].Description)
		}
	}
}
