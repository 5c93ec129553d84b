package explorer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dotway-lab/questboard/pkg/api"
)

// Client reads account statistics from a Subscan compatible block explorer.
type Client interface {
	CountExtrinsics(ctx context.Context, address string) (int, error)
}

type client struct {
	generator api.Generator
	apiKey    string
}

func New(apiKey string, endpoints ...string) *client {
	return &client{
		generator: api.NewGenerator(endpoints...),
		apiKey:    apiKey,
	}
}

func (c *client) CountExtrinsics(ctx context.Context, address string) (int, error) {
	resp, err := c.generator.New("/api/v2/scan/account").
		Body(api.JSON{"address": address}).
		POST(ctx, api.APIKey("X-API-Key", c.apiKey))
	if err != nil {
		return 0, err
	}

	if resp.Code != http.StatusOK {
		return 0, fmt.Errorf("explorer responded with status %d", resp.Code)
	}

	code, err := resp.Body.GetInt("code")
	if err != nil {
		return 0, err
	}

	if code != 0 {
		message, _ := resp.Body.GetString("message")
		return 0, fmt.Errorf("explorer responded with code %d: %s", code, message)
	}

	account, err := resp.Body.GetJSON("data.account")
	if err != nil {
		return 0, err
	}

	// Unknown accounts have no data.
	if account == nil {
		return 0, nil
	}

	if _, ok := account["count_extrinsic"]; !ok {
		return 0, nil
	}

	return account.GetInt("count_extrinsic")
}
