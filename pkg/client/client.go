package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/jobdesk/pkg/domain"
)

// DefaultTimeout bounds every API round trip.
const DefaultTimeout = 30 * time.Second

// ErrNoAccessToken is returned when the login endpoint answers 200 without a token.
var ErrNoAccessToken = errors.New("login response missing access token")

// TokenSource supplies the bearer token for authenticated requests.
// It is read on every request, so a sign-in or sign-out takes effect immediately.
type TokenSource interface {
	Token() string
}

// Endpoints are the two API URLs the client talks to.
type Endpoints struct {
	Login string // POST {username, password}
	Jobs  string // collection; items live at Jobs + "{id}/"
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client is the job board API client.
type Client struct {
	loginURL   string
	jobsURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client. tokens may be nil for unauthenticated use.
func New(ep Endpoints, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		loginURL: ep.Login,
		jobsURL:  ep.Jobs,
		tokens:   tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	if c.jobsURL != "" && !strings.HasSuffix(c.jobsURL, "/") {
		c.jobsURL += "/"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for an access token. Only HTTP 200 counts as success.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.loginURL, domain.LoginRequest{
		Username: username,
		Password: password,
	}, false)
	if err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("client.Login: do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("client.Login: %w", readError(resp))
	}
	var out domain.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("client.Login: decode response: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("client.Login: %w", ErrNoAccessToken)
	}
	return out.Access, nil
}

// ListJobs returns every job posting visible to the current session, in API order.
func (c *Client) ListJobs(ctx context.Context) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := c.get(ctx, c.jobsURL, &jobs); err != nil {
		return nil, fmt.Errorf("client.ListJobs: %w", err)
	}
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	return jobs, nil
}

// CreateJob creates a job posting and returns it with its assigned ID.
func (c *Client) CreateJob(ctx context.Context, f domain.JobFields) (*domain.JobPosting, error) {
	var created domain.JobPosting
	if err := c.doRequest(ctx, http.MethodPost, c.jobsURL, f, &created); err != nil {
		return nil, fmt.Errorf("client.CreateJob: %w", err)
	}
	return &created, nil
}

// UpdateJob replaces the fields of a job posting.
func (c *Client) UpdateJob(ctx context.Context, id domain.JobID, f domain.JobFields) (*domain.JobPosting, error) {
	var updated domain.JobPosting
	if err := c.doRequest(ctx, http.MethodPut, c.jobURL(id), f, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateJob: %w", err)
	}
	return &updated, nil
}

// DeleteJob deletes a job posting. Any 2xx response is success.
func (c *Client) DeleteJob(ctx context.Context, id domain.JobID) error {
	if err := c.doRequest(ctx, http.MethodDelete, c.jobURL(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteJob: %w", err)
	}
	return nil
}

func (c *Client) jobURL(id domain.JobID) string {
	return c.jobsURL + url.PathEscape(id.String()) + "/"
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	return c.doRequest(ctx, http.MethodGet, rawURL, nil, out)
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any, bearer bool) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

func (c *Client) doRequest(ctx context.Context, method, rawURL string, body any, out any) error {
	req, err := c.newRequest(ctx, method, rawURL, body, true)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 300 {
		return readError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readError turns a non-success response into an *HTTPError, lifting the
// API's "error" or "detail" message when the body carries one.
func readError(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil {
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Detail
		}
		if msg != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: msg, APIError: msg}
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
}
