package youtube

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func apiServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" {
			http.Error(w, "missing key", http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"items":[{"contentDetails":{"relatedPlaylists":{"uploads":"UUabc"}}}]}`))
	})

	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("playlistId") != "UUabc" {
			http.Error(w, "unknown playlist", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"items":[
			{"contentDetails":{"videoId":"vid1"}},
			{"contentDetails":{"videoId":"vid2"}}
		]}`))
	})

	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"id":"vid1",
			 "snippet":{"title":"Evening Concert","channelTitle":"Wigmore Hall","description":"Live from London"},
			 "liveStreamingDetails":{"scheduledStartTime":"2021-06-03T18:30:00Z"}},
			{"id":"vid2",
			 "snippet":{"title":"Old Upload","channelTitle":"Wigmore Hall","description":""}}
		]}`))
	})

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("eventType") != "upcoming" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"items":[{"id":{"videoId":"vid9"}}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClientListChannelUploads(t *testing.T) {
	srv := apiServer(t)
	c := NewAPIClientForTest("test-key", srv.URL, srv.Client())

	ids, err := c.ListChannelUploads("UCchan")
	if err != nil {
		t.Fatalf("ListChannelUploads failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "vid1" || ids[1] != "vid2" {
		t.Errorf("ids = %v", ids)
	}
}

func TestAPIClientLiveStreamingDetails(t *testing.T) {
	srv := apiServer(t)
	c := NewAPIClientForTest("test-key", srv.URL, srv.Client())

	details, err := c.LiveStreamingDetails([]string{"vid1", "vid2"})
	if err != nil {
		t.Fatalf("LiveStreamingDetails failed: %v", err)
	}

	// vid2 has no liveStreamingDetails block and is filtered out.
	if len(details) != 1 {
		t.Fatalf("expected 1 live video, got %d", len(details))
	}

	d := details[0]
	if d.VideoID != "vid1" || d.Title != "Evening Concert" {
		t.Errorf("details = %+v", d)
	}
	want := time.Date(2021, 6, 3, 18, 30, 0, 0, time.UTC)
	if !d.ScheduledStart.Equal(want) {
		t.Errorf("scheduled start = %s, want %s", d.ScheduledStart, want)
	}
	if d.WatchURL() != "https://www.youtube.com/watch?v=vid1" {
		t.Errorf("watch url = %s", d.WatchURL())
	}
}

func TestAPIClientLiveStreamingDetailsEmptyInput(t *testing.T) {
	c := NewAPIClient("k")
	details, err := c.LiveStreamingDetails(nil)
	if err != nil || details != nil {
		t.Errorf("empty input should short-circuit, got %v, %v", details, err)
	}
}

func TestAPIClientSearchUpcomingBroadcasts(t *testing.T) {
	srv := apiServer(t)
	c := NewAPIClientForTest("test-key", srv.URL, srv.Client())

	ids, err := c.SearchUpcomingBroadcasts("UCchan")
	if err != nil {
		t.Fatalf("SearchUpcomingBroadcasts failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "vid9" {
		t.Errorf("ids = %v", ids)
	}
}

func TestAPIClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewAPIClientForTest("k", srv.URL, srv.Client())
	if _, err := c.ListChannelUploads("UCchan"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
