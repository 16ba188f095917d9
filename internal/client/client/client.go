// Package client talks to the catalog REST API on behalf of the terminal
// client. The session cookie set by /auth/login is kept in a cookie jar and
// replayed on every later call; server failures are mapped onto the shared
// sentinel errors so callers can match them with errors.Is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/server/models"
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must include scheme and host", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password, verify string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", models.RegisterRequest{
		UserName:       username,
		Password:       password,
		VerifyPassword: verify,
	}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	var id models.Identity
	if err := c.do(ctx, http.MethodPost, "/auth/login", models.Credentials{UserName: username, Password: password}, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Current(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := c.do(ctx, http.MethodGet, "/auth/current", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Products(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError turns a non-2xx response into a sentinel error. The status
// codes overlap across endpoints, so the path disambiguates 401 and 404.
func statusError(path string, resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&e)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrValidation
		if e.Error == common.ErrPasswordMismatch.Error() {
			sentinel = common.ErrPasswordMismatch
		}
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
		if path == "/auth/login" {
			sentinel = common.ErrWrongPassword
		}
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
		if path == "/auth/login" {
			sentinel = common.ErrUserNotFound
		}
	case http.StatusConflict:
		sentinel = common.ErrUsernameExists
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, e.Error)
	}
	return sentinel
}
