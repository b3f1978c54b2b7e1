// Package metabase implements the dataset loader against a Metabase
// instance: session authentication plus saved-question (card) result
// fetches as raw column mappings.
package metabase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client fetches card query results from a Metabase server. It implements
// compliance.Loader. A session token is cached per client and refreshed once
// on 401; there is no other retry.
type Client struct {
	http     *resty.Client
	username string
	password string

	mu      sync.Mutex
	session string
}

// NewClient creates a client for the Metabase instance at baseURL.
func NewClient(baseURL, username, password string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		username: username,
		password: password,
	}
}

// FetchTable runs the saved question identified by queryID and returns its
// result as a column-name to value-sequence mapping, exactly as the service
// serialized it. Transport and authentication failures are returned as
// errors; callers decide how to degrade.
func (c *Client) FetchTable(ctx context.Context, queryID int) (map[string]any, error) {
	token, err := c.sessionToken(ctx, false)
	if err != nil {
		return nil, err
	}

	payload, resp, err := c.runQuery(ctx, queryID, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == 401 {
		// Session expired; re-authenticate once.
		token, err = c.sessionToken(ctx, true)
		if err != nil {
			return nil, err
		}
		payload, resp, err = c.runQuery(ctx, queryID, token)
		if err != nil {
			return nil, err
		}
	}
	if resp.IsError() {
		return nil, fmt.Errorf("query %d failed: %s", queryID, resp.Status())
	}
	return payload, nil
}

func (c *Client) runQuery(ctx context.Context, queryID int, token string) (map[string]any, *resty.Response, error) {
	var payload map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Metabase-Session", token).
		SetResult(&payload).
		Post(fmt.Sprintf("/api/card/%d/query/json", queryID))
	if err != nil {
		return nil, nil, fmt.Errorf("query %d: %w", queryID, err)
	}
	return payload, resp, nil
}

func (c *Client) sessionToken(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != "" && !force {
		return c.session, nil
	}

	var out struct {
		ID string `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"username": c.username,
			"password": c.password,
		}).
		SetResult(&out).
		Post("/api/session")
	if err != nil {
		return "", fmt.Errorf("metabase session: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("metabase session: %s", resp.Status())
	}
	if out.ID == "" {
		return "", fmt.Errorf("metabase session: empty token")
	}

	c.session = out.ID
	return c.session, nil
}
