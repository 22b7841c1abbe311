// Package crud talks to the employee endpoints. Reads are plain GETs;
// every mutating request carries the CSRF header read fresh from the cookie
// jar, and is refused locally when no token is available.
package crud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/csrf"
	"github.com/marcus/empdesk/internal/models"
)

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	Routes     config.Routes
	CSRFCookie string
	CSRFHeader string
	Cookie     string // raw "a=1; b=2" cookies seeded into the jar
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// OptionsFromConfig builds Options from a resolved config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:    cfg.BaseURL,
		Routes:     cfg.Routes,
		CSRFCookie: cfg.CSRFCookie,
		CSRFHeader: cfg.CSRFHeader,
		Cookie:     cfg.Cookie,
		Timeout:    time.Duration(cfg.Timeout),
	}
}

// SubmitResult is the JSON body returned by create and update.
type SubmitResult struct {
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Client issues employee CRUD requests.
type Client struct {
	base       *url.URL
	routes     config.Routes
	http       *http.Client
	tokens     *csrf.Provider
	headerName string
	logger     *slog.Logger
}

// New creates a Client. When opts.HTTPClient has no cookie jar one is
// attached so the server's csrftoken cookie is remembered.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	if opts.Cookie != "" {
		cookies, err := http.ParseCookie(opts.Cookie)
		if err != nil {
			return nil, fmt.Errorf("parse cookie: %w", err)
		}
		for _, c := range cookies {
			c.Path = "/"
		}
		hc.Jar.SetCookies(base, cookies)
	}

	header := opts.CSRFHeader
	if header == "" {
		header = csrf.DefaultHeaderName
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:       base,
		routes:     opts.Routes,
		http:       hc,
		tokens:     csrf.NewProvider(opts.CSRFCookie, csrf.JarSource(hc.Jar, base)),
		headerName: header,
		logger:     logger,
	}, nil
}

// Routes returns the route table the client was built with
func (c *Client) Routes() config.Routes {
	return c.routes
}

// Tokens exposes the CSRF provider backing the client
func (c *Client) Tokens() *csrf.Provider {
	return c.tokens
}

// resolve turns a route or absolute URL into an absolute URL on the server.
func (c *Client) resolve(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", errors.New("empty url")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", ref, err)
	}
	return c.base.ResolveReference(u).String(), nil
}

// Prime loads the list page so the server can set the CSRF cookie.
func (c *Client) Prime(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.routes.List, nil, "", false)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// FetchOne loads one record for the edit form. Every failure is a *FetchError.
func (c *Client) FetchOne(ctx context.Context, ref string) (*models.Employee, error) {
	resp, err := c.do(ctx, http.MethodGet, ref, nil, "", false)
	if err != nil {
		return nil, &FetchError{URL: ref, Err: err}
	}
	defer drain(resp)

	var emp models.Employee
	if err := decodeJSON(resp, &emp); err != nil {
		return nil, &FetchError{URL: ref, Err: err}
	}
	return &emp, nil
}

// SubmitForm posts form-encoded values to an action URL. Used for both
// create and update.
func (c *Client) SubmitForm(ctx context.Context, method, ref string, values url.Values) (*SubmitResult, error) {
	if method == "" {
		method = http.MethodPost
	}
	body := []byte(values.Encode())
	resp, err := c.do(ctx, method, ref, body, "application/x-www-form-urlencoded", true)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	var result SubmitResult
	if err := decodeJSON(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteOne sends DELETE to ref. Any 2xx is success; the body is ignored.
func (c *Client) DeleteOne(ctx context.Context, ref string) error {
	resp, err := c.do(ctx, http.MethodDelete, ref, nil, "", true)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// List loads every employee. Accepts a bare JSON array or {"employees": [...]}.
func (c *Client) List(ctx context.Context) ([]models.Employee, error) {
	resp, err := c.do(ctx, http.MethodGet, c.routes.List, nil, "", false)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &NetworkError{Method: http.MethodGet, URL: resp.Request.URL.String(), Err: err}
	}

	var list []models.Employee
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Employees []models.Employee `json:"employees"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &MalformedResponseError{URL: resp.Request.URL.String(), Err: err}
	}
	return wrapped.Employees, nil
}

// do sends one request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, ref string, body []byte, contentType string, mutating bool) (*http.Response, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}

	var token string
	if mutating {
		token, err = c.tokens.Token()
		if err != nil {
			c.logger.Warn("mutating request blocked", "method", method, "url", target, "err", err)
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if mutating {
		req.Header.Set(c.headerName, token)
		// Django checks the Referer on secure requests
		req.Header.Set("Referer", c.base.String())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			"method", method,
			"url", target,
			"request_id", reqID,
			"err", err,
		)
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	c.logger.Info("req",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", reqID,
		"dur", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		return nil, &HTTPError{Method: method, URL: target, Status: resp.StatusCode}
	}
	return resp, nil
}

func decodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(v); err != nil {
		return &MalformedResponseError{URL: resp.Request.URL.String(), Err: err}
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
	resp.Body.Close()
}
