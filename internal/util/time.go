package util

import (
	"time"
	_ "time/tzdata"

	log "github.com/sirupsen/logrus"
)

const marketTimezone = "America/Sao_Paulo"

// marketClose is the local session close used to anchor horizon dates.
var marketClose = struct{ hour, minute int }{18, 0}

// NextBusinessClose returns the next weekday session close at or after
// input, in UTC. Exchange holidays are not modelled.
func NextBusinessClose(input time.Time) time.Time {
	loc := marketLocation()
	local := input.In(loc)

	next := time.Date(local.Year(), local.Month(), local.Day(), marketClose.hour, marketClose.minute, 0, 0, loc)
	if local.After(next) {
		next = next.AddDate(0, 0, 1)
	}
	for isWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.UTC()
}

// HorizonEndDate returns the session close horizonDays weekdays after the
// session containing asOf. A horizon of zero or less returns that session.
// Only Saturdays and Sundays are skipped; B3 holidays count as trading days,
// so the date is an estimate whenever the horizon spans one.
func HorizonEndDate(asOf time.Time, horizonDays int) time.Time {
	loc := marketLocation()
	end := NextBusinessClose(asOf).In(loc)
	for i := 0; i < horizonDays; i++ {
		end = end.AddDate(0, 0, 1)
		for isWeekend(end) {
			end = end.AddDate(0, 0, 1)
		}
	}
	return end.UTC()
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func marketLocation() *time.Location {
	loc, err := time.LoadLocation(marketTimezone)
	if err != nil {
		log.Errorf("Failed to load location '%s': %v. Falling back to UTC.", marketTimezone, err)
		return time.UTC
	}
	return loc
}
