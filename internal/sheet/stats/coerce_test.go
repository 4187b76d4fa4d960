package stats

import (
	"math"
	"testing"
)

func TestInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"5", 5},
		{"  7", 7},
		{"12abc", 12},
		{"3.9", 3},
		{"-4", -4},
		{"+2", 2},
		{"-", 0},
		{"99999999999999999999", math.MaxInt32},
		{"-99999999999999999999", math.MinInt32},
	}
	for _, tt := range tests {
		if got := Int(tt.in); got != tt.want {
			t.Errorf("Int(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"1.5", 1.5},
		{"2", 2},
		{"1.5kg", 1.5},
		{".5", 0.5},
		{"-.25", -0.25},
		{"5.", 5},
		{"2e3", 2000},
		{"2e", 2},
		{".", 0},
		{"Infinity", 0},
		{"1e400", 0},
	}
	for _, tt := range tests {
		if got := Float(tt.in); got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{3.5, "3.5"},
		{200, "200"},
		{-1, "-1"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	a, b := 0.1, 0.2
	if got := Format(a + b); got != "0.30000000000000004" {
		t.Errorf("Format(0.1+0.2) = %q, want full float rendering", got)
	}
	if got := Format(CarryWeight([]string{"0.1", "0.2"})); got != "0.30000000000000004" {
		t.Errorf("carry weight of 0.1 and 0.2 = %q, want float sum", got)
	}
	if got := FormatInt(-3); got != "-3" {
		t.Fatalf("FormatInt(-3) = %q", got)
	}
}
