// Package service holds the publisher calendar rules: working days, the daily
// publication time and the effective date a quote is served from.
package service

import (
	"time"
	// the publisher timezone must resolve on hosts without zoneinfo
	_ "time/tzdata"
)

const (
	// PublisherTimezone is the timezone the publisher's calendar dates are expressed in
	PublisherTimezone = "Europe/Brussels"

	// PublisherUpdateHour is the local hour at which the day's rates are published
	PublisherUpdateHour = 16
)

var publisherLocation = mustLoadLocation(PublisherTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("load publisher timezone: " + err.Error())
	}
	return loc
}

// PublisherLocation returns the publisher's timezone
func PublisherLocation() *time.Location {
	return publisherLocation
}

// IsWeekend reports whether t falls on a Saturday or Sunday in its own location.
// Public holidays are not modeled.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// PreviousWorkingDay steps back one calendar day at a time until the result is
// not a weekend day. The result is always strictly earlier than t and keeps its
// wall-clock time and location.
func PreviousWorkingDay(t time.Time) time.Time {
	for {
		t = t.AddDate(0, 0, -1)
		if !IsWeekend(t) {
			return t
		}
	}
}

// StartOfDay returns midnight of date's calendar day in the publisher timezone
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, publisherLocation)
}

// Today returns the current calendar day in the publisher timezone
func Today(now time.Time) time.Time {
	return StartOfDay(now.In(publisherLocation))
}

// RecentWorkingDay returns today in the publisher timezone, or the last working
// day before it when today is a weekend day.
func RecentWorkingDay(now time.Time) time.Time {
	day := now.In(publisherLocation)
	if IsWeekend(day) {
		day = PreviousWorkingDay(day)
	}
	return day
}

// LastUpdateTime returns the nominal publication instant for date: 16:00 in the
// publisher timezone, moved to the previous working day on weekends.
func LastUpdateTime(date time.Time) time.Time {
	day := StartOfDay(date)
	if IsWeekend(day) {
		day = PreviousWorkingDay(day)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), PublisherUpdateHour, 0, 0, 0, publisherLocation)
}
