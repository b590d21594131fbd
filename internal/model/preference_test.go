package model

import (
	"errors"
	"testing"
)

func TestParseUserID(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
	}{
		{"1", 1},
		{"10", 10},
		{" 4 ", 4},
	} {
		got, err := ParseUserID(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseUserID(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
	for _, in := range []string{"", "0", "11", "-3", "abc", "2.5", "1e1"} {
		if _, err := ParseUserID(in); !errors.Is(err, ErrInvalidUserID) {
			t.Errorf("ParseUserID(%q): expected ErrInvalidUserID, got %v", in, err)
		}
	}
}
