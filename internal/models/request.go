package models

import "time"

// RenderRequest carries the values substituted into a template during
// one generation call. It is never persisted.
type RenderRequest struct {
	ScheduledDate time.Time // platform-reported start time of the stream
	Link          string    // watch URL, inserted verbatim
	Info          string    // operator-entered free text (service leader)
}

// NextSunday returns t if it falls on a Sunday, otherwise the same
// time on the following Sunday. Used as the default service date when
// no stream is selected.
func NextSunday(t time.Time) time.Time {
	days := (int(time.Sunday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, days)
}
