package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/dotway-lab/questboard/pkg/xcontext"
)

var ErrAllEndpointsFailed = errors.New("all endpoints got errors")

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	POST(ctx context.Context, opts ...Opt) (*Response, error)
	GET(ctx context.Context, opts ...Opt) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

type Opt interface {
	Apply(*http.Request)
}

type defaultGenerator struct {
	endpoints []string
	next      atomic.Uint32
}

// NewGenerator returns a Generator whose clients start from the next endpoint
// in turn and fall back to the following ones until one answers with a JSON
// body and a non 5xx status.
func NewGenerator(endpoints ...string) *defaultGenerator {
	return &defaultGenerator{endpoints: endpoints}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	start := 0
	if len(g.endpoints) > 0 {
		start = int(g.next.Add(1)-1) % len(g.endpoints)
	}

	return &defaultClient{
		endpoints: g.endpoints,
		start:     start,
		path:      fmt.Sprintf(path, args...),
		headers:   make(http.Header),
	}
}

type defaultClient struct {
	endpoints []string
	start     int
	path      string
	headers   http.Header
	query     Parameter
	body      Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers.Set(name, value)
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.call(ctx, http.MethodPost, opts...)
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.call(ctx, http.MethodGet, opts...)
}

func (c *defaultClient) call(ctx context.Context, method string, opts ...Opt) (*Response, error) {
	var payload []byte
	var contentType string
	if c.body != nil {
		reader, ct, err := c.body.ToReader()
		if err != nil {
			return nil, err
		}

		if payload, err = io.ReadAll(reader); err != nil {
			return nil, err
		}
		contentType = ct
	}

	for i := range c.endpoints {
		url := c.endpoints[(c.start+i)%len(c.endpoints)] + c.path
		if len(c.query) > 0 {
			url += "?" + c.query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}

		req.Header = c.headers.Clone()
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		for _, opt := range opts {
			opt.Apply(req)
		}

		resp, err := c.do(ctx, req)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot call %s: %v", url, err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			continue
		}

		return resp, nil
	}

	return nil, ErrAllEndpointsFailed
}

func (c *defaultClient) do(ctx context.Context, req *http.Request) (*Response, error) {
	result, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	if result.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("server responded with status %d", result.StatusCode)
	}

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}

	resp := &Response{Code: result.StatusCode, Header: result.Header, RawBody: body, Body: JSON{}}
	if len(body) > 0 {
		if resp.Body, err = decodeJSON(body); err != nil {
			return nil, fmt.Errorf("cannot parse body: %w", err)
		}
	}

	return resp, nil
}
