package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("QUESTBOARD_API_PORT", "9090")
	t.Setenv("QUESTBOARD_RPC_ENDPOINTS", "wss://a.example, ,wss://b.example")
	t.Setenv("QUESTBOARD_VERIFICATION_DELAY", "2s")
	t.Setenv("QUESTBOARD_NFT_CLAIM_BONUS", "300")

	cfg := defaultConfigs()
	require.NoError(t, overrideFromEnv(&cfg))

	require.Equal(t, "9090", cfg.ApiServer.Port)
	require.Equal(t, []string{"wss://a.example", "wss://b.example"}, cfg.Chain.RPCEndpoints)
	require.Equal(t, 2*time.Second, cfg.Quest.VerificationDelay)
	require.Equal(t, uint64(300), cfg.Quest.NFTClaimBonus)

	// Untouched values keep their defaults.
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "DotWay", cfg.Quest.AppName)
}

func TestOverrideFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("QUESTBOARD_TOKEN_EXPIRATION", "one week")

	cfg := defaultConfigs()
	require.Error(t, overrideFromEnv(&cfg))
}
