package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long an operation took. Use as
// defer TrackTime("op", time.Now()).
func TrackTime(op string, start time.Time) {
	log.WithField("op", op).Debugf("took %d µs", time.Since(start).Microseconds())
}
