// Package api is the client for the classification service's HTTP contract:
// stats polling, image prediction and account endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/state"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// Client talks to the classification service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client's logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Stats fetches the usage snapshot.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, "loading stats", http.MethodGet, "/api/stats", nil, "", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Predict uploads one image as the multipart field "file". The part carries
// mimeType as its content type.
func (c *Client) Predict(ctx context.Context, name, mimeType string, data io.Reader) (*Prediction, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeFilePart(writer, name, mimeType, data))
	}()

	var p Prediction
	err := c.do(ctx, "submitting image", http.MethodPost, "/predict", pr, writer.FormDataContentType(), &p)
	// Unblocks the writer if the request ended before consuming the body.
	pr.Close()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func writeFilePart(writer *multipart.Writer, name, mimeType string, data io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, data); err != nil {
		return err
	}
	return writer.Close()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// Login authenticates and returns the account.
func (c *Client) Login(ctx context.Context, cred Credentials) (*state.User, error) {
	return c.auth(ctx, "logging in", "/api/auth/login", [][2]string{
		{"email", cred.Email},
		{"password", cred.Password},
	})
}

// Signup creates an account and returns it.
func (c *Client) Signup(ctx context.Context, reg Registration) (*state.User, error) {
	return c.auth(ctx, "signing up", "/api/auth/signup", [][2]string{
		{"name", reg.Name},
		{"email", reg.Email},
		{"password", reg.Password},
		{"password_confirm", reg.PasswordConfirm},
	})
}

// Logout ends the server-side session. Callers treat it as fire-and-forget.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logging out", http.MethodPost, "/api/auth/logout", nil, "", nil)
}

// Profile fetches the authenticated account and its usage.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, "loading profile", http.MethodGet, "/api/user/profile", nil, "", &p); err != nil {
		return nil, err
	}
	if p.User == nil {
		return nil, &RejectionError{StatusCode: http.StatusOK, Body: "profile has no user"}
	}
	return &p, nil
}

func (c *Client) auth(ctx context.Context, op, path string, fields [][2]string) (*state.User, error) {
	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}

	var resp authBody
	if err := c.do(ctx, op, http.MethodPost, path, strings.NewReader(body.String()), writer.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &RejectionError{StatusCode: http.StatusOK, Body: "response has no user"}
	}
	return resp.User, nil
}

// do issues one request. A nil out discards the body.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rej := newRejection(resp.StatusCode, raw)
		c.log.Warn("request rejected", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("detail", rej.Detail))
		return rej
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("malformed response", zap.String("op", op), zap.Error(err))
		return &RejectionError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return nil
}
