package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mobiquip/backoffice-api/internal/domain/billing"
)

func TestParseDurationHours(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1:30", "1.5"},
		{"2:00", "2"},
		{"0:15", "0.25"},
		{"1.5", "1.5"},
		{"2", "2"},
		{" 1:30 ", "1.5"},
		{"0", "0"},
		// Fallbacks: unparsable entries bill a single hour.
		{"", "1"},
		{"an hour", "1"},
		{"1:xx", "1"},
		{"1:75", "1"}, // minutes out of range
		{"-2", "1"},
		{"-1:30", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := billing.ParseDurationHours(tt.in)
			assert.True(t, got.Equal(dec(tt.want)), "ParseDurationHours(%q) = %s, want %s", tt.in, got, tt.want)
		})
	}
}
