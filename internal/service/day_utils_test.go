package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	// Test case 1: Midday collapses to midnight in the same zone
	melbourne, err := time.LoadLocation("Australia/Melbourne")
	assert.NoError(t, err)

	value := time.Date(2025, time.March, 14, 15, 9, 26, 535, melbourne)
	got := StartOfDay(value, melbourne)
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, melbourne), got)

	// Test case 2: The calendar day follows the location, not the value's zone
	utcEvening := time.Date(2025, time.March, 14, 22, 0, 0, 0, time.UTC)
	got = StartOfDay(utcEvening, melbourne)
	// 22:00 UTC is already March 15 in Melbourne
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, melbourne), got)

	// Test case 3: Nil location falls back to UTC
	got = StartOfDay(utcEvening, nil)
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), got)

	// Test case 4: Midnight is a fixed point
	midnight := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight, StartOfDay(midnight, time.UTC))
}
