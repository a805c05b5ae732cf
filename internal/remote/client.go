package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const (
	signedURLPath = "/generate-signed-url"
	reportPath    = "/generate-report"

	maxErrorBody = 512
)

// Client calls the signed-URL issuer, the report generator and storage.
type Client struct {
	baseURL string
	api     *http.Client
	storage *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for both the API and storage calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.api = hc
		c.storage = hc
	}
}

// WithBearerToken authenticates API calls. Storage uploads never carry the
// token; the signed URL is its own authorisation.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New constructs a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("remote: invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		api:     http.DefaultClient,
		storage: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.api)
		c.api = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token, TokenType: "Bearer"}))
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type signedURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type signedURLResponse struct {
	SignedURL string `json:"signed_url"`
}

type reportRequest struct {
	Month string `json:"month"`
}

type reportResponse struct {
	DownloadURL string `json:"download_url"`
}

// SignedURL asks the issuer for a pre-authorised upload URL.
func (c *Client) SignedURL(ctx context.Context, fileName, contentType string) (string, error) {
	var out signedURLResponse
	if err := c.postJSON(ctx, "signed_url", signedURLPath, signedURLRequest{FileName: fileName, ContentType: contentType}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.SignedURL) == "" {
		return "", fmt.Errorf("signed_url: response missing signed_url")
	}
	return out.SignedURL, nil
}

// GenerateReport requests the report for a YYYY-MM period.
func (c *Client) GenerateReport(ctx context.Context, period string) (string, error) {
	var out reportResponse
	if err := c.postJSON(ctx, "report", reportPath, reportRequest{Month: period}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.DownloadURL) == "" {
		return "", fmt.Errorf("report: response missing download_url")
	}
	return out.DownloadURL, nil
}

// Upload PUTs the body to a signed URL. size is sent as Content-Length
// when positive.
func (c *Client) Upload(ctx context.Context, signedURL, contentType string, body io.Reader, size int64) error {
	if size == 0 || body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, body)
	if err != nil {
		return fmt.Errorf("upload: build request: %w", err)
	}
	if size > 0 {
		req.ContentLength = size
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.storage.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return newStatusError("upload", resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return newStatusError(op, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: response parse: %w", op, err)
	}
	return nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
