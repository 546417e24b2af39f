package types

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer", input: "3", want: "3.00"},
		{name: "decimal", input: "2.505", want: "2.51"},
		{name: "whitespace", input: "  1.5 ", want: "1.50"},
		{name: "empty", input: "", want: "0.00"},
		{name: "non-numeric", input: "abc", want: "0.00"},
		{name: "comma separator rejected", input: "1,50", want: "0.00"},
		{name: "negative parses", input: "-2", want: "-2.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(ParseAmount(tt.input))
			if got.StringFixed(2) != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "7.515", want: "7.52"},
		{input: "7.514", want: "7.51"},
		{input: "7.525", want: "7.53"},
		{input: "-7.515", want: "-7.52"},
	}

	for _, tt := range tests {
		got := Round2(MustMoney(tt.input))
		if got.StringFixed(2) != tt.want {
			t.Errorf("Round2(%s) = %s, want %s", tt.input, got.StringFixed(2), tt.want)
		}
	}
}
