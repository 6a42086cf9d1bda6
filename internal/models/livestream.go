package models

import "time"

// Livestream describes an upcoming scheduled broadcast as reported by
// the video platform.
type Livestream struct {
	Title          string    `json:"title"`
	VideoID        string    `json:"video_id"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	ScheduledStart time.Time `json:"scheduled_start"`
}

// WatchURL returns the public watch link for the stream.
func (l Livestream) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + l.VideoID
}

// IsFirstSunday reports whether the scheduled start falls on the first
// Sunday of its month.
func (l Livestream) IsFirstSunday() bool {
	d := l.ScheduledStart
	return d.Weekday() == time.Sunday && d.Day() >= 1 && d.Day() <= 7
}
