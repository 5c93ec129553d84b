package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

// Logger writes one line per request. Known errors are warnings, anything
// else is logged as an error with its full chain.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		log := xcontext.Logger(ctx)

		var elapsed time.Duration
		if start := xcontext.StartTime(ctx); !start.IsZero() {
			elapsed = time.Since(start)
		}

		err := xcontext.Error(ctx)
		var errx errorx.Error
		switch {
		case err == nil:
			log.Infof("%s %s | %s", req.Method, req.URL.Path, elapsed)
		case errors.As(err, &errx):
			log.Warnf("%s %s | %s | %d %s", req.Method, req.URL.Path, elapsed, errx.Code, errx.Message)
		default:
			log.Errorf("%s %s | %s | %v", req.Method, req.URL.Path, elapsed, err)
		}
	}
}
