// Package apiclient talks to the lesson plan REST API and decodes its
// {code, message, data} envelope.
package apiclient

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

	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/pkg/middleware/requestid"
)

// Observer receives timing for every outbound call.
type Observer interface {
	ObserveUpstreamRequest(method, path string, status int, duration time.Duration)
}

// Config holds the connection settings.
type Config struct {
	BaseURL string
	Token   string
	UserID  string
	Timeout time.Duration
}

// Response is a decoded envelope.
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// HasData reports whether the envelope carries a non-null payload.
func (r *Response) HasData() bool {
	if r == nil {
		return false
	}
	trimmed := bytes.TrimSpace(r.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals the payload into dest.
func (r *Response) Decode(dest interface{}) error {
	if !r.HasData() {
		return &Error{Kind: KindApplication, Status: r.Status, Code: r.Code, Message: "response carries no data"}
	}
	if err := json.Unmarshal(r.Data, dest); err != nil {
		return &Error{Kind: KindTransport, Status: r.Status, Code: r.Code, Message: "malformed response data", Err: err}
	}
	return nil
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its timeout is kept as given.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithObserver records call timing.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client is a stateless API client. It is safe for concurrent use.
type Client struct {
	baseURL  string
	token    string
	userID   string
	http     *http.Client
	observer Observer
	logger   *zap.Logger
}

// New constructs a Client.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   strings.TrimSpace(cfg.Token),
		userID:  strings.TrimSpace(cfg.UserID),
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserID returns the configured user id.
func (c *Client) UserID() string {
	return c.userID
}

type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   interface{}
}

// do sends one request and decodes the envelope. Non-2xx answers become application errors.
func (c *Client) do(ctx context.Context, in call) (*Response, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	var body io.Reader
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return nil, preconditionError(fmt.Sprintf("encode request: %v", err))
		}
		body = bytes.NewReader(raw)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return nil, preconditionError(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.HeaderKey, requestid.New())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.observe(in, 0, start)
		c.logger.Warn("api call failed", zap.String("method", in.method), zap.String("path", in.path), zap.Error(err))
		return nil, &Error{Kind: KindTransport, Message: transportMessage(err), Err: err}
	}
	defer res.Body.Close()
	c.observe(in, res.StatusCode, start)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: res.StatusCode, Message: "read response body", Err: err}
	}

	resp := &Response{Status: res.StatusCode}
	decodeErr := json.Unmarshal(raw, resp)

	if res.StatusCode >= http.StatusBadRequest {
		message := resp.Message
		if decodeErr != nil || message == "" {
			message = http.StatusText(res.StatusCode)
		}
		return nil, &Error{Kind: KindApplication, Status: res.StatusCode, Code: resp.Code, Message: message}
	}
	if decodeErr != nil {
		return nil, &Error{Kind: KindTransport, Status: res.StatusCode, Message: "malformed response envelope", Err: decodeErr}
	}

	c.logger.Debug("api call",
		zap.String("method", in.method),
		zap.String("path", in.path),
		zap.Int("status", res.StatusCode),
		zap.Int("code", resp.Code),
		zap.Duration("latency", time.Since(start)),
	)
	return resp, nil
}

func (c *Client) observe(in call, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(in.method, in.route, status, time.Since(start))
	}
}

// expect runs the call and requires one of the accepted codes, decoding data into dest when non-nil.
func (c *Client) expect(ctx context.Context, in call, dest interface{}, accepted ...int) (*Response, error) {
	resp, err := c.do(ctx, in)
	if err != nil {
		return nil, err
	}
	if !Accepts(resp, accepted...) {
		return resp, &Error{Kind: KindApplication, Status: resp.Status, Code: resp.Code, Message: applicationMessage(resp)}
	}
	if dest != nil {
		if err := resp.Decode(dest); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// Accepts reports whether resp's code is one of codes. No codes means only 0.
func Accepts(resp *Response, codes ...int) bool {
	if resp == nil {
		return false
	}
	if len(codes) == 0 {
		return resp.Code == 0
	}
	for _, code := range codes {
		if resp.Code == code {
			return true
		}
	}
	return false
}

func applicationMessage(resp *Response) string {
	if resp.Message != "" {
		return resp.Message
	}
	return fmt.Sprintf("unexpected response code %d", resp.Code)
}

func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "request timed out"
		}
		if urlErr.Err != nil {
			return urlErr.Err.Error()
		}
	}
	return err.Error()
}
