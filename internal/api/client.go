// Package api implements the Beeminder REST API client: authenticated URL
// construction and one method per remote operation.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jpdarago/beeminder/internal/config"
	"github.com/jpdarago/beeminder/internal/logging"
	"github.com/jpdarago/beeminder/internal/model"
)

// DefaultBaseURL is the production Beeminder API root.
const DefaultBaseURL = "https://www.beeminder.com/api/v1"

// DefaultTimeout bounds a single round trip. There is no retry: a request
// either completes within this window or the invocation fails.
const DefaultTimeout = 30 * time.Second

// Client issues authenticated requests against the Beeminder API on behalf
// of a single user. It is safe for reuse across calls but each CLI
// invocation performs exactly one logical operation.
type Client struct {
	baseURL    string
	creds      config.Credentials
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for the given credentials. baseURL is the API
// root without a trailing slash; pass DefaultBaseURL outside of tests.
func NewClient(creds config.Credentials, baseURL, version string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		creds:     creds,
		userAgent: "beeminder/" + version,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// buildURL composes the user-scoped resource URL with the auth token as a
// trailing query parameter. Pure function of the client state and part; the
// token travels in cleartext query form because that is the service's
// authentication contract.
func (c *Client) buildURL(part string) string {
	return fmt.Sprintf("%s/users/%s%s?auth_token=%s",
		c.baseURL, c.creds.Username, part, url.QueryEscape(c.creds.AuthToken))
}

// User fetches the account snapshot.
func (c *Client) User(ctx context.Context) (*model.User, error) {
	logging.Logf(logging.Info, "retrieving user data for %s", c.creds.Username)
	var user model.User
	if err := c.getJSON(ctx, ".json", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Goals fetches all goals of the user.
func (c *Client) Goals(ctx context.Context) ([]model.Goal, error) {
	logging.Logf(logging.Info, "retrieving goals for user %s", c.creds.Username)
	var goals []model.Goal
	if err := c.getJSON(ctx, "/goals.json", &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Goal fetches a single goal by slug.
func (c *Client) Goal(ctx context.Context, slug string) (*model.Goal, error) {
	logging.Logf(logging.Info, "retrieving goal data for goal %s user %s", slug, c.creds.Username)
	var goal model.Goal
	if err := c.getJSON(ctx, fmt.Sprintf("/goals/%s.json", slug), &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// Datapoints fetches the datapoints of a goal.
func (c *Client) Datapoints(ctx context.Context, goal string) ([]model.Datapoint, error) {
	logging.Logf(logging.Info, "retrieving datapoints for goal %s user %s", goal, c.creds.Username)
	var points []model.Datapoint
	if err := c.getJSON(ctx, fmt.Sprintf("/goals/%s/datapoints.json", goal), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// CreateDatapointParams carries the fields of a single datapoint creation.
// Only Value is mandatory; nil optional fields are omitted from the form
// body entirely rather than sent empty.
type CreateDatapointParams struct {
	Value     float64
	Timestamp *int64
	Daystamp  *string
	Comment   *string
	RequestID *string
}

// CreateDatapoint submits one datapoint to a goal. The response body is not
// consulted beyond the status check.
func (c *Client) CreateDatapoint(ctx context.Context, goal string, params CreateDatapointParams) error {
	logging.Logf(logging.Info, "creating new datapoint for goal %s user %s", goal, c.creds.Username)
	form := url.Values{}
	form.Set("value", strconv.FormatFloat(params.Value, 'f', -1, 64))
	if params.Timestamp != nil {
		form.Set("timestamp", strconv.FormatInt(*params.Timestamp, 10))
	}
	if params.Daystamp != nil {
		form.Set("daystamp", *params.Daystamp)
	}
	if params.Comment != nil {
		form.Set("comment", *params.Comment)
	}
	if params.RequestID != nil {
		form.Set("requestid", *params.RequestID)
	}
	return c.postForm(ctx, fmt.Sprintf("/goals/%s/datapoints.json", goal), form)
}

// CreateDatapoints bulk-submits datapoints to the create_all endpoint as a
// single JSON-encoded form field.
func (c *Client) CreateDatapoints(ctx context.Context, goal string, points []model.Datapoint) error {
	logging.Logf(logging.Info, "creating %d datapoints for goal %s user %s", len(points), goal, c.creds.Username)
	if points == nil {
		points = []model.Datapoint{}
	}
	encoded, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("failed to encode datapoints: %w", err)
	}
	form := url.Values{}
	form.Set("datapoints", string(encoded))
	return c.postForm(ctx, fmt.Sprintf("/goals/%s/datapoints/create_all.json", goal), form)
}

// DeleteDatapoint removes a single datapoint by id.
func (c *Client) DeleteDatapoint(ctx context.Context, goal, id string) error {
	logging.Logf(logging.Info, "deleting datapoint %s for goal %s user %s", id, goal, c.creds.Username)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.buildURL(fmt.Sprintf("/goals/%s/datapoints/%s.json", goal, id)), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	_, err = c.do(req)
	return err
}

// getJSON performs a GET and decodes the response body into v.
func (c *Client) getJSON(ctx context.Context, part string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(part), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// postForm performs a POST with a form-encoded body. The Content-Type is
// declared as application/json even though the body is form-encoded; the
// service has always been driven this way and changing the header risks
// breaking its request handling.
func (c *Client) postForm(ctx context.Context, part string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(part), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req)
	return err
}

// do executes the request, applying the client signature headers, and
// returns the response body. Any transport failure or non-2xx status is an
// error; there is no retry.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	logging.Logf(logging.Debug, "sending request: %s %s", req.Method, req.URL.Redacted())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	logging.Logf(logging.Debug, "response status %d (%d bytes)", resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, snippet(body))
	}
	return body, nil
}

// snippet shortens a response body for error messages.
func snippet(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
