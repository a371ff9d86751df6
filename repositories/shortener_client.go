package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	bitlyAPIURL     = "https://api-ssl.bitly.com/v4/shorten"
	shortenTimeout  = 10 * time.Second
	maxErrorBodyLen = 512
)

// ShortenerClient shortens URLs through the Bitly API. Shortening is an
// optional enhancement: with no token configured, or on any failure, the
// original URL is returned and delivery proceeds.
type ShortenerClient struct {
	token  string
	apiURL string
	client *http.Client
}

func NewShortenerClient(token string) *ShortenerClient {
	return &ShortenerClient{
		token:  token,
		apiURL: bitlyAPIURL,
		client: &http.Client{Timeout: shortenTimeout},
	}
}

type shortenRequest struct {
	LongURL string `json:"long_url"`
}

type shortenResponse struct {
	Link string `json:"link"`
}

func (c *ShortenerClient) Shorten(ctx context.Context, longURL string) string {
	if c.token == "" {
		return longURL
	}

	body, err := json.Marshal(shortenRequest{LongURL: longURL})
	if err != nil {
		log.Printf("bitly request marshal failed: %v", err)
		return longURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("bitly request build failed: %v", err)
		return longURL
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("bitly request failed: %v", err)
		return longURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		log.Printf("bitly error: %d - %s", resp.StatusCode, string(text))
		return longURL
	}

	var out shortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("bitly response decode failed: %v", err)
		return longURL
	}
	if out.Link == "" {
		return longURL
	}
	return out.Link
}

// Close releases the client's idle connections. Call on shutdown.
func (c *ShortenerClient) Close() {
	c.client.CloseIdleConnections()
}
