package util

import (
	"strings"
	"testing"
	"time"
)

func TestParseAge_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30d", 30 * 24 * time.Hour},
		{"0d", 0},
		{"72h", 72 * time.Hour},
		{" 90m ", 90 * time.Minute},
		{"1h30m", 90 * time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseAge(tt.in)
		if err != nil {
			t.Errorf("ParseAge(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAge(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAge_Invalid(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"", "empty"},
		{"xd", "invalid duration"},
		{"-3d", "positive"},
		{"-1h", "positive"},
		{"soon", "invalid duration"},
	}
	for _, tt := range tests {
		_, err := ParseAge(tt.in)
		if err == nil {
			t.Errorf("ParseAge(%q): expected error", tt.in)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("ParseAge(%q) error = %q, want it to mention %q", tt.in, err, tt.wantErr)
		}
	}
}
