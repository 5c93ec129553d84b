package api

import "net/http"

type apiKeyOpt struct {
	header string
	key    string
}

// APIKey sets the given header to key. An empty key is not sent.
func APIKey(header, key string) *apiKeyOpt {
	return &apiKeyOpt{header: header, key: key}
}

func (opt *apiKeyOpt) Apply(req *http.Request) {
	if opt.key != "" {
		req.Header.Set(opt.header, opt.key)
	}
}
