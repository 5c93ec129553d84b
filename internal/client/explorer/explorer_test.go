package explorer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newExplorer(t *testing.T, status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/scan/account", r.URL.Path)
		require.Equal(t, "key", r.Header.Get("X-API-Key"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestClient_CountExtrinsics(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr bool
	}{
		{
			name:   "happy case",
			status: http.StatusOK,
			body:   `{"code":0,"message":"Success","data":{"account":{"address":"1abc","count_extrinsic":42}}}`,
			want:   42,
		},
		{
			name:   "account without extrinsics",
			status: http.StatusOK,
			body:   `{"code":0,"message":"Success","data":{"account":{"address":"1abc"}}}`,
			want:   0,
		},
		{
			name:   "unknown account",
			status: http.StatusOK,
			body:   `{"code":0,"message":"Success","data":{"account":null}}`,
			want:   0,
		},
		{
			name:    "api error",
			status:  http.StatusOK,
			body:    `{"code":10004,"message":"Record Not Found"}`,
			wantErr: true,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `{"code":20008,"message":"Too Many Requests"}`,
			wantErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			server := newExplorer(t, tt.status, tt.body)
			defer server.Close()

			got, err := New("key", server.URL).CountExtrinsics(context.Background(), "1abc")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
