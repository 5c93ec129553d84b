package repository

import (
	"testing"
	"time"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewUserRepository()

	joinedAt := time.Now().Truncate(time.Second)
	require.NoError(t, repo.Upsert(ctx, &entity.User{
		Base:          entity.Base{ID: "user1"},
		WalletAddress: "1abc",
		Username:      "ada",
		XP:            0,
		Level:         1,
		JoinedAt:      joinedAt,
	}))

	// Same wallet, another id: the first id is kept.
	require.NoError(t, repo.Upsert(ctx, &entity.User{
		Base:          entity.Base{ID: "user2"},
		WalletAddress: "1abc",
		Username:      "ada lovelace",
		XP:            1200,
		Level:         2,
		Twitter:       "@ada",
	}))

	user, err := repo.FindByWallet(ctx, "1abc")
	require.NoError(t, err)
	require.Equal(t, "user1", user.ID)
	require.Equal(t, "ada lovelace", user.Username)
	require.Equal(t, uint64(1200), user.XP)
	require.Equal(t, uint64(2), user.Level)
	require.Equal(t, "@ada", user.Twitter)
	require.True(t, joinedAt.Equal(user.JoinedAt))

	_, err = repo.FindByWallet(ctx, "1xyz")
	require.Error(t, err)

	users, err := repo.GetByWallets(ctx, []string{"1abc", "1xyz"})
	require.NoError(t, err)
	require.Len(t, users, 1)
}
