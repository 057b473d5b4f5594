package service

import "time"

// StartOfDay returns midnight of value's calendar day in the given location.
// A nil location means UTC.
func StartOfDay(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
