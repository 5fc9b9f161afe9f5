// Package api talks to the remote persons collection over HTTP.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/idilsaglam/phonebook/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CollectionPath is where the persons collection lives on the server.
const CollectionPath = "/api/persons"

// Client performs list, create and delete against the collection resource.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a Client for the server at baseURL (scheme and host, with an
// optional path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &Client{
		base: u,
		http: NewHTTPClient(DefaultTransportConfig()),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server address the client was built for.
func (c *Client) BaseURL() string { return c.base.String() }

// List fetches the whole collection in server order.
func (c *Client) List(ctx context.Context) ([]model.Entry, error) {
	op := http.MethodGet + " " + CollectionPath

	resp, err := c.do(ctx, http.MethodGet, CollectionPath, nil)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if !isSuccess(resp.status) {
		return nil, &Error{Op: op, Kind: KindStatus, Status: resp.status}
	}

	var entries []model.Entry
	if err := json.Unmarshal(resp.body, &entries); err != nil {
		return nil, &Error{Op: op, Kind: KindDecode, Status: resp.status, Err: err}
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

type createRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Create posts a new entry and returns it as stored by the server.
// A failed create reports the server's "error" field when it sent one.
func (c *Client) Create(ctx context.Context, name, number string) (model.Entry, error) {
	op := http.MethodPost + " " + CollectionPath

	payload, err := json.Marshal(createRequest{Name: name, Number: number})
	if err != nil {
		return model.Entry{}, &Error{Op: op, Kind: KindDecode, Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, CollectionPath, payload)
	if err != nil {
		return model.Entry{}, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	if !isSuccess(resp.status) {
		e := &Error{Op: op, Kind: KindStatus, Status: resp.status}
		var eb errorBody
		if json.Unmarshal(resp.body, &eb) == nil {
			e.Message = eb.Error
		}
		return model.Entry{}, e
	}

	var created model.Entry
	if err := json.Unmarshal(resp.body, &created); err != nil {
		return model.Entry{}, &Error{Op: op, Kind: KindDecode, Status: resp.status, Err: err}
	}
	return created, nil
}

// Delete removes the entry with the given id.
func (c *Client) Delete(ctx context.Context, id model.ID) error {
	p := CollectionPath + "/" + url.PathEscape(id.String())
	op := http.MethodDelete + " " + CollectionPath + "/" + id.String()

	resp, err := c.do(ctx, http.MethodDelete, p, nil)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	// 204 is named on purpose even though it is a 2xx.
	if !isSuccess(resp.status) && resp.status != http.StatusNoContent {
		return &Error{Op: op, Kind: KindStatus, Status: resp.status}
	}
	return nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (response, error) {
	// path arrives escaped; keep ids containing '/' or '%' intact.
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return response{}, fmt.Errorf("path %q: %w", path, err)
	}
	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + unescaped
	u.RawPath = strings.TrimSuffix(c.base.EscapedPath(), "/") + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api.request.failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return response{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read body: %w", err)
	}

	c.log.Debug("api.request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(b)),
		zap.Duration("duration", time.Since(start)),
	)
	return response{status: resp.StatusCode, body: b}, nil
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }
