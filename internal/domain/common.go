package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

// sessionBoard returns the board of the requesting session. The board is
// restored from the device store if it is not opened yet.
func sessionBoard(ctx context.Context, manager *questboard.Manager) (*questboard.Board, error) {
	sessionID := xcontext.SessionID(ctx)
	if sessionID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to connect a wallet before")
	}

	return manager.Open(ctx, sessionID, xcontext.DeviceID(ctx))
}

// limitOf applies the default and max limit of the api server.
func limitOf(ctx context.Context, limit int) (int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit < 0 {
		return 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.MaxLimit)
	}

	return limit, nil
}
