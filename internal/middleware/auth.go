package middleware

import (
	"context"
	"strings"

	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/token"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

type AuthVerifier struct {
	tokenEngine token.Engine[model.AccessToken]
}

func NewAuthVerifier(tokenEngine token.Engine[model.AccessToken]) *AuthVerifier {
	return &AuthVerifier{tokenEngine: tokenEngine}
}

// Middleware reads the access token from the Authorization header, or from
// the access token cookie, and puts the session of the token into the
// context. A request without token passes through unauthenticated.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tkn := a.accessToken(ctx)
		if tkn == "" {
			return nil, nil
		}

		info, err := a.tokenEngine.Verify(tkn)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		ctx = xcontext.WithSessionID(ctx, info.SessionID)
		ctx = xcontext.WithDeviceID(ctx, info.DeviceID)
		return ctx, nil
	}
}

func (a *AuthVerifier) accessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	if prefix, tkn, found := strings.Cut(authorization, " "); found && strings.EqualFold(prefix, "Bearer") {
		return strings.TrimSpace(tkn)
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// Authenticate rejects requests without a session.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.SessionID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to connect a wallet before")
		}

		return nil, nil
	}
}
