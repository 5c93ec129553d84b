package repository

import (
	"testing"

	"github.com/dotway-lab/questboard/pkg/kvstore"
	"github.com/dotway-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_keyValueRepository(t *testing.T) {
	ctx := testutil.MockContext()

	var store kvstore.Store = NewKeyValueRepository()

	_, err := store.Get(ctx, "dotway_wallet")
	require.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, store.Set(ctx, "dotway_wallet", "1abc"))
	require.NoError(t, store.Set(ctx, "dotway_wallet", "1def"))

	value, err := store.Get(ctx, "dotway_wallet")
	require.NoError(t, err)
	require.Equal(t, "1def", value)

	require.NoError(t, store.Remove(ctx, "dotway_wallet"))
	_, err = store.Get(ctx, "dotway_wallet")
	require.ErrorIs(t, err, kvstore.ErrNotFound)
}
