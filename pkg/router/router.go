package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dotway-lab/questboard/config"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/logger"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a derived context. A nil context keeps the
// current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of the request, even if the handler or a
// middleware failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	db      *gorm.DB
	cfg     config.Configs
	logger  logger.Logger
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Branch returns a router sharing the same mux. Middlewares added to the
// branch do not affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle registers a raw http.Handler, e.g. the metrics endpoint.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowedOrigins,
		AllowCredentials: true,
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}).Handler(r.mux)
}

func GET[Request, Response any](router *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(router, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](router *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(router, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	router *Router,
	method, pattern string,
	handler HandlerFunc[Request, Response],
) {
	befores := router.befores
	afters := router.afters
	closers := append(append([]CloserFunc{}, router.closers...), writeEnvelope())

	router.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		ctx = serve(ctx, method, befores, afters, handler)

		for _, closer := range closers {
			closer(ctx)
		}
	})
}

func serve[Request, Response any](
	ctx context.Context,
	method string,
	befores, afters []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) context.Context {
	req := xcontext.HTTPRequest(ctx)
	if req.Method != method {
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Method %s is not allowed", req.Method))
	}

	var err error
	ctx, err = runMiddlewares(ctx, befores)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	var request Request
	if err := bind(req, &request); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
	}

	resp, err := handler(ctx, &request)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	ctx = xcontext.WithResponse(ctx, resp)
	ctx, err = runMiddlewares(ctx, afters)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	return ctx
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func bind(r *http.Request, req any) error {
	if r.Method == http.MethodGet {
		query := map[string]any{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				query[key] = values[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           req,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(query)
	}

	err := json.NewDecoder(r.Body).Decode(req)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}
