package main

import "testing"

func TestVariantArg(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
		wantErr  bool
	}{
		{nil, "dino", false},
		{[]string{"dino_classic"}, "dino_classic", false},
		{[]string{"pong"}, "", true},
	}
	for _, tt := range tests {
		got, err := variantArg(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("variantArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("variantArg(%v) = %q, expected %q", tt.args, got, tt.expected)
		}
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr, expected string
	}{
		{"0.0.0.0:2222", "2222"},
		{":23234", "23234"},
		{"2222", "2222"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.expected {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}
