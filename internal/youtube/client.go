// Package youtube queries the YouTube Data API v3 for upcoming
// scheduled livestreams on a channel.
//
// The lookup is deliberately forgiving: any non-success response or
// transport failure yields an empty result rather than an error, so the
// console renders "no upcoming livestreams" instead of halting. The
// operator can always retry.
package youtube

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/parishav/announcer/internal/models"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client calls the YouTube Data API with an API key
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetBaseURL overrides the API endpoint. Tests point this at an
// httptest server.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// searchResponse mirrors the fields we read from search.list
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// videosResponse mirrors the fields we read from videos.list
type videosResponse struct {
	Items []struct {
		ID                   string `json:"id"`
		LiveStreamingDetails struct {
			ScheduledStartTime string `json:"scheduledStartTime"`
		} `json:"liveStreamingDetails"`
	} `json:"items"`
}

// SearchUpcoming returns the channel's upcoming scheduled broadcasts in
// platform order. Scheduled start times are not populated here; use
// ScheduledStartTimes or UpcomingLivestreams for that.
func (c *Client) SearchUpcoming(channelID string, maxResults int) ([]models.Livestream, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("eventType", "upcoming")
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", c.apiKey)

	var parsed searchResponse
	if ok := c.get("/search", params, &parsed); !ok {
		return []models.Livestream{}, nil
	}

	var livestreams []models.Livestream
	for _, item := range parsed.Items {
		livestreams = append(livestreams, models.Livestream{
			Title:        item.Snippet.Title,
			VideoID:      item.ID.VideoID,
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
		})
	}
	return livestreams, nil
}

// ScheduledStartTimes returns a map from video id to scheduled start
// time for the given broadcasts. Videos without a scheduled time are
// omitted from the map.
func (c *Client) ScheduledStartTimes(videoIDs []string) (map[string]time.Time, error) {
	startTimes := make(map[string]time.Time)
	if len(videoIDs) == 0 {
		return startTimes, nil
	}

	params := url.Values{}
	params.Set("part", "liveStreamingDetails")
	params.Set("id", strings.Join(videoIDs, ","))
	params.Set("key", c.apiKey)

	var parsed videosResponse
	if ok := c.get("/videos", params, &parsed); !ok {
		return startTimes, nil
	}

	for _, item := range parsed.Items {
		raw := item.LiveStreamingDetails.ScheduledStartTime
		if raw == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		startTimes[item.ID] = start
	}
	return startTimes, nil
}

// UpcomingLivestreams joins the search and videos calls: it returns
// upcoming broadcasts that have a known scheduled start time, with the
// time filled in.
func (c *Client) UpcomingLivestreams(channelID string, maxResults int) ([]models.Livestream, error) {
	livestreams, err := c.SearchUpcoming(channelID, maxResults)
	if err != nil {
		return nil, err
	}
	if len(livestreams) == 0 {
		return livestreams, nil
	}

	ids := make([]string, 0, len(livestreams))
	for _, l := range livestreams {
		ids = append(ids, l.VideoID)
	}

	startTimes, err := c.ScheduledStartTimes(ids)
	if err != nil {
		return nil, err
	}

	var scheduled []models.Livestream
	for _, l := range livestreams {
		start, ok := startTimes[l.VideoID]
		if !ok {
			continue
		}
		l.ScheduledStart = start
		scheduled = append(scheduled, l)
	}
	return scheduled, nil
}

// get performs one API call and decodes the body into out. It reports
// false on any transport, status or decode failure; callers treat that
// uniformly as "no data".
func (c *Client) get(path string, params url.Values, out interface{}) bool {
	resp, err := c.httpClient.Get(c.baseURL + path + "?" + params.Encode())
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false
	}
	return true
}
