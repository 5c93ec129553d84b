package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// resultCode is "0" on success, the errorx code on a known failure and "-1"
// otherwise.
func resultCode(err error) string {
	if err == nil {
		return "0"
	}

	var errx errorx.Error
	if !errors.As(err, &errx) {
		return "-1"
	}
	return strconv.Itoa(int(errx.Code))
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		labels := []string{xcontext.HTTPRequest(ctx).URL.Path, resultCode(xcontext.Error(ctx))}
		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(labels...).Inc()

		if start := xcontext.StartTime(ctx); !start.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		}
	}
}
