package core

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", -100, true},
		{"-12.34", -1234, true},
		{"+3", 300, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	cases := []struct {
		m    Money
		wire string
	}{
		{Money{Cents: 120000}, "1200.00"},
		{Money{Cents: 1}, "0.01"},
		{Money{Cents: -4550}, "-45.50"},
		{Money{}, "0.00"},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.m)
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.m.Cents, err)
		}
		if string(data) != tc.wire {
			t.Fatalf("expected %q on the wire, got %q", tc.wire, data)
		}
		var back Money
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %q: %v", data, err)
		}
		if back != tc.m {
			t.Fatalf("round trip of %d gave %d", tc.m.Cents, back.Cents)
		}
	}
}

func TestMoneyUnmarshalFloat(t *testing.T) {
	// Files written by earlier versions may carry bare floats.
	var m Money
	if err := json.Unmarshal([]byte("1200.5"), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Cents != 120050 {
		t.Fatalf("expected 120050, got %d", m.Cents)
	}
	if err := json.Unmarshal([]byte("1.5e2"), &m); err != nil {
		t.Fatalf("exponent notation: %v", err)
	}
	if m.Cents != 15000 {
		t.Fatalf("expected 15000, got %d", m.Cents)
	}
}

func TestMoneyDisplay(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{120000, "RM 1,200.00"},
		{123456789, "RM 1,234,567.89"},
		{-4550, "RM -45.50"},
		{5, "RM 0.05"},
		{0, "RM 0.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Display("RM"); got != tc.want {
			t.Fatalf("%d expected %q, got %q", tc.cents, tc.want, got)
		}
	}
	if got := (Money{Cents: 100}).Display(""); got != "1.00" {
		t.Fatalf("expected bare amount, got %q", got)
	}
}
