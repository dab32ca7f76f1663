package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDayLabel(t *testing.T) {
	tests := []struct {
		today    bool
		tomorrow bool
		want     string
	}{
		{false, false, "today"},
		{true, false, "today"},
		{false, true, "tomorrow"},
		// Tomorrow wins when both flags are set
		{true, true, "tomorrow"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, resolveDayLabel(tc.today, tc.tomorrow))
	}
}
