package middleware

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

// WithSnowFlake gives handlers the id generator of the server.
func WithSnowFlake(node *snowflake.Node) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithSnowFlake(ctx, node), nil
	}
}
