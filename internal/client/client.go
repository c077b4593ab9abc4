// Package client is a small HTTP client for the user service API, used by
// the interactive command-line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devops25/userauth/internal/common"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the bearer token obtained by the last successful Login.
func (c *Client) Token() string {
	return c.token
}

// SetToken installs a previously obtained bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

type apiResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Error    string `json:"error"`
}

// Register creates a new account and returns the server message.
func (c *Client) Register(ctx context.Context, username, password, university string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	if university != "" {
		body["university"] = university
	}

	resp, err := c.post(ctx, "/api/auth/register", body, false)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	resp, err := c.post(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, false)
	if err != nil {
		return err
	}

	c.token = resp.Token
	return nil
}

// ErrNoSession is returned by token-bound calls made before a Login.
var ErrNoSession = errors.New("no session token")

// Logout revokes the current token on the server and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return ErrNoSession
	}
	if _, err := c.post(ctx, "/api/auth/logout", nil, true); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Whoami returns the username bound to the current token.
func (c *Client) Whoami(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, true)
	if err != nil {
		return "", err
	}
	return resp.Username, nil
}

func (c *Client) post(ctx context.Context, path string, body any, withAuth bool) (*apiResponse, error) {
	return c.do(ctx, http.MethodPost, path, body, withAuth)
}

func (c *Client) do(ctx context.Context, method, path string, body any, withAuth bool) (*apiResponse, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	resp := &apiResponse{}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		if resp.Error != "" {
			return nil, fmt.Errorf("server: %s", resp.Error)
		}
		return nil, fmt.Errorf("server: unexpected status %d", httpResp.StatusCode)
	}

	return resp, nil
}
