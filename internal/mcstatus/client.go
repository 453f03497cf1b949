package mcstatus

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.mcstatus.io/v2"

// Client queries the mcstatus.io API for Minecraft server status
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new status client
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// JavaStatus is the probe result for a Java edition server
type JavaStatus struct {
	Online  bool   `json:"online"`
	Host    string `json:"host"`
	Players struct {
		Online int `json:"online"`
		Max    int `json:"max"`
	} `json:"players"`
	Version struct {
		NameClean string `json:"name_clean"`
	} `json:"version"`
	MOTD struct {
		Clean string `json:"clean"`
	} `json:"motd"`
}

// GetJavaStatus probes a Java edition server by address
func (c *Client) GetJavaStatus(address string) (*JavaStatus, error) {
	url := fmt.Sprintf("%s/status/java/%s", c.baseURL, address)

	status := &JavaStatus{}
	if err := c.get(url, status); err != nil {
		return nil, err
	}
	return status, nil
}

// get performs a GET request and decodes the JSON response
func (c *Client) get(url string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
