package time

import (
	"testing"
	"time"
)

func TestSeconds(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want float64
	}{
		{0, 0},
		{-time.Second, 0},
		{1500 * time.Millisecond, 1.5},
		{1234567 * time.Microsecond, 1.235},
		{2 * time.Minute, 120},
	}
	for _, c := range cases {
		if got := Seconds(c.in); got != c.want {
			t.Fatalf("Seconds(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
