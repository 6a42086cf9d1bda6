package youtube

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const searchBody = `{
  "items": [
    {
      "id": {"videoId": "vid1"},
      "snippet": {
        "title": "Sunday Service",
        "thumbnails": {"high": {"url": "https://img.example/vid1.jpg"}}
      }
    },
    {
      "id": {"videoId": "vid2"},
      "snippet": {
        "title": "Midweek Prayer",
        "thumbnails": {"high": {"url": "https://img.example/vid2.jpg"}}
      }
    }
  ]
}`

const videosBody = `{
  "items": [
    {
      "id": "vid1",
      "liveStreamingDetails": {"scheduledStartTime": "2024-11-17T10:30:00Z"}
    },
    {
      "id": "vid2",
      "liveStreamingDetails": {}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key")
	client.SetBaseURL(server.URL)
	return client
}

func TestSearchUpcoming(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("eventType") != "upcoming" || q.Get("type") != "video" {
			t.Errorf("Missing upcoming filter params: %v", q)
		}
		if q.Get("key") != "test-key" {
			t.Errorf("Expected api key in query, got %q", q.Get("key"))
		}
		w.Write([]byte(searchBody))
	})

	livestreams, err := client.SearchUpcoming("UC123", 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(livestreams) != 2 {
		t.Fatalf("Expected 2 livestreams, got %d", len(livestreams))
	}
	if livestreams[0].Title != "Sunday Service" || livestreams[0].VideoID != "vid1" {
		t.Errorf("Unexpected first livestream: %+v", livestreams[0])
	}
	if livestreams[0].ThumbnailURL != "https://img.example/vid1.jpg" {
		t.Errorf("Unexpected thumbnail url: %s", livestreams[0].ThumbnailURL)
	}
}

func TestSearchUpcomingNonSuccessYieldsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})

	livestreams, err := client.SearchUpcoming("UC123", 5)
	if err != nil {
		t.Fatalf("Non-success must not surface an error, got %v", err)
	}
	if len(livestreams) != 0 {
		t.Errorf("Expected empty result, got %d items", len(livestreams))
	}
}

func TestScheduledStartTimes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "vid1,vid2" {
			t.Errorf("Expected joined video ids, got %q", got)
		}
		w.Write([]byte(videosBody))
	})

	times, err := client.ScheduledStartTimes([]string{"vid1", "vid2"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := time.Date(2024, 11, 17, 10, 30, 0, 0, time.UTC)
	if got, ok := times["vid1"]; !ok || !got.Equal(expected) {
		t.Errorf("Expected vid1 at %v, got %v (ok=%v)", expected, got, ok)
	}
	// vid2 has no scheduled time and must be omitted
	if _, ok := times["vid2"]; ok {
		t.Error("Expected vid2 to be omitted")
	}
}

func TestScheduledStartTimesEmptyInput(t *testing.T) {
	client := NewClient("test-key")

	// No network call should be made for an empty id list
	times, err := client.ScheduledStartTimes(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(times) != 0 {
		t.Errorf("Expected empty map, got %v", times)
	}
}

func TestUpcomingLivestreamsJoinsSchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(searchBody))
		case "/videos":
			w.Write([]byte(videosBody))
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	})

	livestreams, err := client.UpcomingLivestreams("UC123", 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// vid2 has no scheduled time, so only vid1 survives the join
	if len(livestreams) != 1 {
		t.Fatalf("Expected 1 scheduled livestream, got %d", len(livestreams))
	}
	if livestreams[0].VideoID != "vid1" {
		t.Errorf("Expected vid1, got %s", livestreams[0].VideoID)
	}
	if livestreams[0].ScheduledStart.IsZero() {
		t.Error("Expected scheduled start to be filled in")
	}
	if livestreams[0].WatchURL() != "https://www.youtube.com/watch?v=vid1" {
		t.Errorf("Unexpected watch url: %s", livestreams[0].WatchURL())
	}
}
