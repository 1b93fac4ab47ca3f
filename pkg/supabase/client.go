package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Error is a non-2xx response from Supabase
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Body)
}

type tokenKey struct{}

// WithUserToken attaches a user JWT to ctx so requests run under RLS as that user
func WithUserToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func userToken(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey{}).(string); ok {
		return t
	}
	return ""
}

// do builds and sends one REST request and returns the response body
func (c *Client) do(ctx context.Context, method, path string, query url.Values, data interface{}, prefer string) ([]byte, error) {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL+path, body)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("apikey", c.ServiceKey)

	// Use user token if provided, otherwise use service key
	if token := userToken(ctx); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	} else {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func toValues(query map[string]interface{}) url.Values {
	q := url.Values{}
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	return q
}

// Query executes a query on a Supabase table
func (c *Client) Query(ctx context.Context, table string, query map[string]interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/rest/v1/"+table, toValues(query), nil, "")
}

// Upsert inserts or updates a record in a Supabase table
// onConflict specifies the columns to detect conflicts (e.g., "user_id,date")
func (c *Client) Upsert(ctx context.Context, table string, data interface{}, onConflict string) ([]byte, error) {
	q := url.Values{}
	q.Add("on_conflict", onConflict)
	// resolution=merge-duplicates will update existing rows
	return c.do(ctx, http.MethodPost, "/rest/v1/"+table, q, data, "return=representation,resolution=merge-duplicates")
}

// DeleteWhere deletes records matching a query
func (c *Client) DeleteWhere(ctx context.Context, table string, query map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodDelete, "/rest/v1/"+table, toValues(query), nil, "")
	return err
}

// VerifyToken verifies a JWT token with Supabase
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	body, err := c.do(WithUserToken(ctx, token), http.MethodGet, "/auth/v1/user", nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
