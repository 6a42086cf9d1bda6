package cli

import (
	"testing"
	"time"
)

func TestParseRenderRequestDefaultsToNextSunday(t *testing.T) {
	c := &CLI{}

	req, _, err := c.parseRenderRequest(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.ScheduledDate.Weekday() != time.Sunday {
		t.Errorf("Default date %v is not a Sunday", req.ScheduledDate)
	}
}

func TestParseRenderRequestFlags(t *testing.T) {
	c := &CLI{}

	req, copyText, err := c.parseRenderRequest([]string{
		"--date", "2024-11-17",
		"--link", "https://www.youtube.com/watch?v=vid1",
		"--info", "Evening Prayer",
		"--copy",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !req.ScheduledDate.Equal(time.Date(2024, 11, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %v", req.ScheduledDate)
	}
	if req.Link != "https://www.youtube.com/watch?v=vid1" {
		t.Errorf("Unexpected link %q", req.Link)
	}
	if req.Info != "Evening Prayer" {
		t.Errorf("Unexpected info %q", req.Info)
	}
	if !copyText {
		t.Error("Expected --copy to be detected")
	}
}

func TestParseRenderRequestRejectsBadDate(t *testing.T) {
	c := &CLI{}

	if _, _, err := c.parseRenderRequest([]string{"--date", "next week"}); err == nil {
		t.Error("Expected error for unparseable date")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one" {
		t.Errorf("Expected first line only, got %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("Expected whole body, got %q", got)
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("abc"); err == nil {
		t.Error("Expected error for non-numeric id")
	}
	id, err := parseID("12")
	if err != nil || id != 12 {
		t.Errorf("Expected 12, got %d (%v)", id, err)
	}
}
