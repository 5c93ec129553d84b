package repository

import (
	"testing"

	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_postRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewPostRepository()

	first := &entity.Post{AuthorAddress: "1abc", Content: "hello"}
	second := &entity.Post{AuthorAddress: "1def", Content: "gm"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NotZero(t, first.ID)
	require.Greater(t, second.ID, first.ID)

	posts, err := repo.GetList(ctx, GetListPostFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "gm", posts[0].Content)

	posts, err = repo.GetList(ctx, GetListPostFilter{AuthorAddresses: []string{"1abc"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "hello", posts[0].Content)

	posts, err = repo.GetList(ctx, GetListPostFilter{Offset: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func Test_followerRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewFollowerRepository()

	require.NoError(t, repo.Follow(ctx, "1abc", "1def"))
	require.NoError(t, repo.Follow(ctx, "1abc", "1def"))
	require.NoError(t, repo.Follow(ctx, "1xyz", "1def"))

	followers, err := repo.GetFollowers(ctx, "1def", 0, 10)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.GetFollowing(ctx, "1abc", 0, 10)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "1def", following[0].FollowingAddress)

	require.NoError(t, repo.Unfollow(ctx, "1abc", "1def"))
	followers, err = repo.GetFollowers(ctx, "1def", 0, 10)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "1xyz", followers[0].FollowerAddress)
}
