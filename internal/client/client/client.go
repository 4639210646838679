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

	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// User is the redacted account returned by the server.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

type RightOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Right struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	User   *RightOwner `json:"user,omitempty"`
}

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Age      *int   `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Password string `json:"password"`
}

// HTTPClient talks to the userkeeper REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, name, password string) (*Session, error) {
	body := map[string]string{"name": name, "password": password}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Rights lists every right with its owner.
func (c *HTTPClient) Rights(ctx context.Context, token string) ([]Right, error) {
	var rights []Right
	if err := c.do(ctx, http.MethodGet, "/getRights", token, nil, &rights); err != nil {
		return nil, err
	}
	return rights, nil
}

// MyRights lists the rights of the token holder.
func (c *HTTPClient) MyRights(ctx context.Context, token string) ([]Right, error) {
	var rights []Right
	if err := c.do(ctx, http.MethodGet, "/myRights", token, nil, &rights); err != nil {
		return nil, err
	}
	return rights, nil
}

func (c *HTTPClient) GrantRight(ctx context.Context, token, name, userID string) (*Right, error) {
	body := map[string]string{"name": name, "user_id": userID}
	var res struct {
		Right *Right `json:"right"`
	}
	if err := c.do(ctx, http.MethodPost, "/userRight", token, body, &res); err != nil {
		return nil, err
	}
	if res.Right == nil {
		return nil, errors.New("empty right in response")
	}
	return res.Right, nil
}

// Ping checks the health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
