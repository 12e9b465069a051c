package repository

import "testing"

// The storage layer may hand numerics back as int64, float64 or text
// depending on the column type; the coercion helpers must accept all of them.

func TestToInt(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{int64(7), 7},
		{float64(3), 3},
		{[]byte("42"), 42},
		{"15", 15},
		{nil, 0},
		{"not a number", 0},
	}
	for _, c := range cases {
		if got := toInt(c.in); got != c.want {
			t.Errorf("toInt(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
	}{
		{float64(9.99), 9.99},
		{int64(5), 5},
		{[]byte("24.98"), 24.98},
		{"310.00", 310},
		{nil, 0},
	}
	for _, c := range cases {
		if got := toFloat(c.in); got != c.want {
			t.Errorf("toFloat(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	if got := normalizeValue([]byte("Champions")); got != "Champions" {
		t.Errorf("expected string, got %T %v", got, got)
	}
	if got := normalizeValue(int64(5)); got != int64(5) {
		t.Errorf("expected passthrough, got %v", got)
	}
	if got := normalizeValue(nil); got != nil {
		t.Errorf("expected nil passthrough, got %v", got)
	}
}
