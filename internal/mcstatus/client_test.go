package mcstatus

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJavaStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status/java/play.example.com" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"online": true,
			"host": "play.example.com",
			"players": {"online": 12, "max": 100},
			"version": {"name_clean": "1.21.4"},
			"motd": {"clean": "Welcome!"}
		}`))
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	status, err := client.GetJavaStatus("play.example.com")
	if err != nil {
		t.Fatalf("GetJavaStatus: %v", err)
	}

	if !status.Online {
		t.Error("Online = false")
	}
	if status.Players.Online != 12 || status.Players.Max != 100 {
		t.Errorf("Players = %+v", status.Players)
	}
	if status.Version.NameClean != "1.21.4" {
		t.Errorf("Version = %q", status.Version.NameClean)
	}
}

func TestGetJavaStatusAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad hostname", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	if _, err := client.GetJavaStatus("nope"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
