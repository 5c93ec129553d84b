package domain

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/internal/repository"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

const defaultPostMaxLength = 1000

type CommunityDomain interface {
	CreatePost(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetPosts(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type communityDomain struct {
	manager      *questboard.Manager
	postRepo     repository.PostRepository
	followerRepo repository.FollowerRepository
	userRepo     repository.UserRepository
}

func NewCommunityDomain(
	manager *questboard.Manager,
	postRepo repository.PostRepository,
	followerRepo repository.FollowerRepository,
	userRepo repository.UserRepository,
) *communityDomain {
	return &communityDomain{
		manager:      manager,
		postRepo:     postRepo,
		followerRepo: followerRepo,
		userRepo:     userRepo,
	}
}

// activeAddress returns the wallet of the requesting session.
func (d *communityDomain) activeAddress(ctx context.Context) (string, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return "", err
	}

	address := board.Address()
	if address == "" {
		return "", errorx.New(errorx.Unauthenticated, "Wallet not connected")
	}

	return address, nil
}

func (d *communityDomain) CreatePost(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	profile := board.Profile()
	if profile == nil {
		return nil, errorx.New(errorx.Unauthenticated, "You need to create a profile before")
	}

	maxLength := xcontext.Configs(ctx).Quest.PostMaxLength
	if maxLength == 0 {
		maxLength = defaultPostMaxLength
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.Validation, "Post content is required")
	}

	if utf8.RuneCountInString(content) > maxLength {
		return nil, errorx.New(errorx.Validation, "Post content exceeds %d characters", maxLength)
	}

	post := &entity.Post{AuthorAddress: profile.Address, Content: content}
	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{Post: convertPost(*post)}, nil
}

func (d *communityDomain) GetPosts(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	limit, err := limitOf(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetListPostFilter{Offset: req.Offset, Limit: limit}
	if req.Author != "" {
		filter.AuthorAddresses = []string{req.Author}
	}

	if req.Following {
		address, err := d.activeAddress(ctx)
		if err != nil {
			return nil, err
		}

		following, err := d.followerRepo.GetFollowing(ctx, address, 0, -1)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
			return nil, errorx.Unknown
		}

		filter.AuthorAddresses = []string{}
		for _, f := range following {
			filter.AuthorAddresses = append(filter.AuthorAddresses, f.FollowingAddress)
		}

		if len(filter.AuthorAddresses) == 0 {
			return &model.GetPostsResponse{Posts: []model.Post{}}, nil
		}
	}

	posts, err := d.postRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Post{}
	for _, p := range posts {
		result = append(result, convertPost(p))
	}

	return &model.GetPostsResponse{Posts: result}, nil
}

func (d *communityDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty address")
	}

	address, err := d.activeAddress(ctx)
	if err != nil {
		return nil, err
	}

	if address == req.Address {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if err := d.followerRepo.Follow(ctx, address, req.Address); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FollowResponse{}, nil
}

func (d *communityDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty address")
	}

	address, err := d.activeAddress(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.followerRepo.Unfollow(ctx, address, req.Address); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unfollow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

func (d *communityDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	address, limit, err := d.listTarget(ctx, req.Address, req.Limit)
	if err != nil {
		return nil, err
	}

	followers, err := d.followerRepo.GetFollowers(ctx, address, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	addresses := []string{}
	for _, f := range followers {
		addresses = append(addresses, f.FollowerAddress)
	}

	return &model.GetFollowersResponse{Followers: d.convertFollowers(ctx, followers, addresses)}, nil
}

func (d *communityDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	address, limit, err := d.listTarget(ctx, req.Address, req.Limit)
	if err != nil {
		return nil, err
	}

	following, err := d.followerRepo.GetFollowing(ctx, address, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	addresses := []string{}
	for _, f := range following {
		addresses = append(addresses, f.FollowingAddress)
	}

	return &model.GetFollowingResponse{Following: d.convertFollowers(ctx, following, addresses)}, nil
}

func (d *communityDomain) listTarget(ctx context.Context, address string, limit int) (string, int, error) {
	limit, err := limitOf(ctx, limit)
	if err != nil {
		return "", 0, err
	}

	if address == "" {
		address, err = d.activeAddress(ctx)
		if err != nil {
			return "", 0, err
		}
	}

	return address, limit, nil
}

// convertFollowers describes the i-th relation by addresses[i], the other end
// of the relation.
func (d *communityDomain) convertFollowers(
	ctx context.Context, relations []entity.Follower, addresses []string,
) []model.Follower {
	users := map[string]entity.User{}
	records, err := d.userRepo.GetByWallets(ctx, addresses)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get users: %v", err)
	}

	for _, u := range records {
		users[u.WalletAddress] = u
	}

	result := []model.Follower{}
	for i, r := range relations {
		f := model.Follower{
			Address:   addresses[i],
			CreatedAt: r.CreatedAt.Format(defaultTimeLayout),
		}

		if u, ok := users[addresses[i]]; ok {
			f.Username = u.Username
			f.Avatar = u.Avatar
		}

		result = append(result, f)
	}

	return result
}
