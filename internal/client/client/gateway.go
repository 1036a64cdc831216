package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/posadmin/internal/common"
	"github.com/dmitrijs2005/posadmin/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// TokenSource yields the bearer token for the current session. An empty
// token with a nil error means nobody is signed in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Options configure a Gateway.
type Options struct {
	BaseURL string
	// Timeout bounds each request. Zero means no client-side deadline.
	Timeout time.Duration
	Logger  logging.Logger
	Metrics *Metrics
	// Transport replaces the default round tripper, mainly for tests.
	Transport http.RoundTripper
}

// Gateway sends JSON requests to the API. Requests made through Do carry the
// session's bearer token; DoPublic sends none. A Gateway never retries.
type Gateway struct {
	http    *resty.Client
	tokens  TokenSource
	log     logging.Logger
	metrics *Metrics
}

func New(opts Options) *Gateway {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		c.SetTransport(opts.Transport)
	}

	return &Gateway{
		http:    c,
		log:     log.With("component", "gateway"),
		metrics: opts.Metrics,
	}
}

// WithTokenSource returns a Gateway sharing g's HTTP client whose Do calls
// are authorized by ts.
func (g *Gateway) WithTokenSource(ts TokenSource) *Gateway {
	cp := *g
	cp.tokens = ts
	return &cp
}

// Do sends an authorized request and returns the raw response body. Without
// a token it fails with KindUnauthenticated before touching the network.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	op := method + " " + path

	var token string
	if g.tokens != nil {
		t, err := g.tokens.Token(ctx)
		if err != nil {
			return nil, &Error{Kind: KindUnauthenticated, Op: op, Message: MsgUnauthenticated, Err: err}
		}
		token = t
	}
	if token == "" {
		return nil, &Error{Kind: KindUnauthenticated, Op: op, Message: MsgUnauthenticated}
	}

	return g.send(ctx, op, method, path, body, token)
}

// DoPublic sends a request without credentials.
func (g *Gateway) DoPublic(ctx context.Context, method, path string, body any) ([]byte, error) {
	return g.send(ctx, method+" "+path, method, path, body, "")
}

func (g *Gateway) send(ctx context.Context, op, method, path string, body any, token string) ([]byte, error) {
	reqID := uuid.NewString()

	req := g.http.R().
		SetContext(ctx).
		SetHeader(common.RequestIDHeader, reqID)
	if token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	elapsed := time.Since(start)

	if err != nil {
		g.metrics.observe(method, path, 0, elapsed)
		g.log.Debug(ctx, "api request failed",
			"method", method, "path", path, "request_id", reqID,
			"duration", elapsed, "error", err)
		return nil, &Error{Kind: KindNetwork, Op: op, Message: MsgNetwork, Err: err}
	}

	status := resp.StatusCode()
	g.metrics.observe(method, path, status, elapsed)
	g.log.Debug(ctx, "api request completed",
		"method", method, "path", path, "status", status,
		"request_id", reqID, "duration", elapsed)

	if status >= http.StatusBadRequest {
		return nil, statusError(op, status, resp.Body())
	}
	return resp.Body(), nil
}

func statusError(op string, status int, body []byte) *Error {
	e := &Error{Op: op, Status: status, Message: ServerMessage(body)}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindUnauthorized
		if e.Message == "" {
			e.Message = MsgUnauthorized
		}
	case status >= http.StatusInternalServerError:
		e.Kind = KindServer
		if e.Message == "" {
			e.Message = MsgServer
		}
	default:
		e.Kind = KindServerValidation
		if e.Message == "" {
			e.Message = MsgRequestFailed
		}
	}
	return e
}

// ServerMessage extracts the "message" or "error" string from a JSON body.
// It returns "" when neither is present or the body is not JSON.
func ServerMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
