package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the Discord REST endpoint used when configuration
// does not override it.
const DefaultAPIBase = "https://discord.com/api/v10"

// Client talks to the Discord REST API with a bot token. The zero value
// is not usable; construct it with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient builds a REST client. An empty token yields a client whose
// lookups always come back empty, which keeps channels untitled instead
// of failing commands.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// LookupChannelName fetches the channel's name. A missing token or a
// refusal from the API returns an empty name without an error; only
// transport-level failures are reported.
func (c *Client) LookupChannelName(ctx context.Context, channelID string) (string, error) {
	if c.token == "" || channelID == "" {
		return "", nil
	}

	url := fmt.Sprintf("%s/channels/%s", c.baseURL, channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build channel request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var channel struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&channel); err != nil {
		return "", fmt.Errorf("decode channel %s: %w", channelID, err)
	}
	return channel.Name, nil
}
