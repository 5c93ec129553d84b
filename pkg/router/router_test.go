package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dotway-lab/questboard/config"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/logger"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name    string `json:"name"`
	Limit   int    `json:"limit"`
	Session string `json:"session"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.Validation, "Empty name")
	}

	return &echoResponse{Name: req.Name, Limit: req.Limit, Session: xcontext.SessionID(ctx)}, nil
}

func newTestRouter() *Router {
	return New(nil, config.Configs{}, logger.NewLogger(logger.SILENCE))
}

func do(t *testing.T, h http.Handler, method, target, body string) envelope {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_GETBindsQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)

	resp := do(t, r.Handler(), http.MethodGet, "/echo?name=ada&limit=5", "")
	require.Equal(t, int64(0), resp.Code)

	data := resp.Data.(map[string]any)
	require.Equal(t, "ada", data["name"])
	require.Equal(t, float64(5), data["limit"])
}

func TestRouter_POSTBindsBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo)

	resp := do(t, r.Handler(), http.MethodPost, "/echo", `{"name":"ada"}`)
	require.Equal(t, int64(0), resp.Code)

	resp = do(t, r.Handler(), http.MethodPost, "/echo", `{"name":`)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)

	resp = do(t, r.Handler(), http.MethodGet, "/echo?name=ada", "")
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func TestRouter_HandlerError(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo)

	resp := do(t, r.Handler(), http.MethodPost, "/echo", `{}`)
	require.Equal(t, int64(errorx.Validation), resp.Code)
	require.Equal(t, "Empty name", resp.Error)
}

func TestRouter_MiddlewaresAndBranch(t *testing.T) {
	r := newTestRouter()

	closed := 0
	r.AddCloser(func(ctx context.Context) { closed++ })

	authed := r.Branch()
	authed.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Need token")
		}
		return xcontext.WithSessionID(ctx, "session-1"), nil
	})

	GET(r, "/public", echo)
	GET(authed, "/private", echo)

	resp := do(t, r.Handler(), http.MethodGet, "/public?name=ada", "")
	require.Equal(t, int64(0), resp.Code)
	require.Equal(t, "", resp.Data.(map[string]any)["session"])

	resp = do(t, r.Handler(), http.MethodGet, "/private?name=ada", "")
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/private?name=ada", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	var got envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "session-1", got.Data.(map[string]any)["session"])
	require.Equal(t, 3, closed)
}

func TestRouter_UnknownError(t *testing.T) {
	r := newTestRouter()
	GET(r, "/boom", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.Canceled
	})

	resp := do(t, r.Handler(), http.MethodGet, "/boom", "")
	require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}
