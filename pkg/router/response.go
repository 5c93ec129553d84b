package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

// envelope is the body of every API response. Code is zero on success.
type envelope struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func failure(err error) envelope {
	known := errorx.Unknown
	var errx errorx.Error
	if errors.As(err, &errx) {
		known = errx
	}

	return envelope{Code: int64(known.Code), Error: known.Message}
}

// writeEnvelope is always the last closer of a route.
func writeEnvelope() CloserFunc {
	return func(ctx context.Context) {
		w := xcontext.HTTPWriter(ctx)
		log := xcontext.Logger(ctx)

		body := envelope{Data: xcontext.Response(ctx)}
		if err := xcontext.Error(ctx); err != nil {
			body = failure(err)
		}

		err := WriteJson(w, body)
		if err == nil || body.Code != 0 {
			if err != nil {
				log.Errorf("Cannot write the error response: %v", err)
			}
			return
		}

		log.Errorf("Cannot write the response: %v", err)
		if err := WriteJson(w, failure(errorx.New(errorx.BadResponse, "Cannot write the response"))); err != nil {
			log.Errorf("Cannot write the error response: %v", err)
		}
	}
}

// WriteJson encodes v as the JSON body of w.
func WriteJson(w http.ResponseWriter, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(b)
	return err
}
