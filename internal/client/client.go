// Package client talks to the résumé API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"curriculum-backend/resume/model"
	"curriculum-backend/resume/validate"
	"curriculum-backend/resume/wire"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// Client calls the résumé endpoints as one identity.
type Client struct {
	baseURL    string
	token      string
	guestID    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithGuestID identifies as a guest.
func WithGuestID(id string) Option {
	return func(c *Client) { c.guestID = strings.TrimSpace(id) }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// New builds a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  validate.FieldErrors
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// ResumeSummary is one row of the résumé list.
type ResumeSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Template is a catalog entry.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Layout      string   `json:"layout"`
	Tags        []string `json:"tags"`
}

// GetResume fetches and normalizes a stored document.
func (c *Client) GetResume(ctx context.Context, id string) (*model.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users/resumes/"+url.PathEscape(id), nil, &raw); err != nil {
		return nil, err
	}
	return model.Decode(raw)
}

// CreateResume creates a blank draft.
func (c *Client) CreateResume(ctx context.Context, title, template string) (*model.Document, error) {
	body := map[string]string{"title": title, "template": template}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/users/resumes", body, &raw); err != nil {
		return nil, err
	}
	return model.Decode(raw)
}

// SaveResume PUTs the payload and returns the stored document with its new version.
func (c *Client) SaveResume(ctx context.Context, id string, payload wire.Payload) (*model.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/users/resumes/"+url.PathEscape(id), payload, &raw); err != nil {
		return nil, err
	}
	return model.Decode(raw)
}

// ListResumes returns the caller's résumés.
func (c *Client) ListResumes(ctx context.Context) ([]ResumeSummary, error) {
	var out []ResumeSummary
	if err := c.do(ctx, http.MethodGet, "/users/resumes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTemplates returns the template catalog.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var out []Template
	if err := c.do(ctx, http.MethodGet, "/resume-templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadPDF fetches the rendered PDF and the file name suggested by the server.
func (c *Client) DownloadPDF(ctx context.Context, id, template string) ([]byte, string, error) {
	path := "/users/resumes/" + url.PathEscape(id) + "/pdf"
	if template != "" {
		path += "?template=" + url.QueryEscape(template)
	}
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, "", decodeError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	name := "resume.pdf"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return data, name, nil
}

// do sends body as JSON and decodes the "data" member of the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("decode %s %s: response has no data", method, path)
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.guestID != "":
		req.Header.Set("X-Guest-Id", c.guestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("%s %s timeout: %w", method, path, err)
		}
		return nil, err
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details struct {
				Fields validate.FieldErrors `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Fields = envelope.Error.Details.Fields
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
