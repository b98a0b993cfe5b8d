package engine_test

import (
	"testing"

	"github.com/warp/scheduling-engine/engine"
)

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{1, "1 minute"},
		{30, "30 minutes"},
		{60, "1 hour"},
		{90, "1 hour 30 minutes"},
		{120, "2 hours"},
		{1440, "1 day"},
		{1500, "1 day 1 hour"},
		{2910, "2 days 30 minutes"},
		{4350, "3 days 30 minutes"},
	}
	for _, tc := range cases {
		if got := engine.FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d): expected %q, got %q", tc.minutes, tc.want, got)
		}
	}
}

func TestFormatMinutesText(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"90", "1 hour 30 minutes"},
		{"60.0", "1 hour"}, // storage sometimes holds decimals
		{"0", "0 minutes"},
		{"not a number", "not a number"}, // malformed passes through
		{"", ""},
	}
	for _, tc := range cases {
		if got := engine.FormatMinutesText(tc.raw); got != tc.want {
			t.Errorf("FormatMinutesText(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}
