package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/dotway-lab/questboard/pkg/router"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if !ok {
			return nil, nil
		}

		cfg := xcontext.Configs(ctx).Auth.AccessToken
		http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
			Name:     cfg.Name,
			Value:    tokenResp.AccessTokenInfo(),
			Path:     "/",
			Expires:  time.Now().Add(cfg.Expiration),
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteNoneMode,
		})

		return nil, nil
	}
}
