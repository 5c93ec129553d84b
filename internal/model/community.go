package model

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostsRequest struct {
	// Author filters the posts of one address. Following only returns the
	// posts of the addresses followed by the active wallet.
	Author    string `json:"author"`
	Following bool   `json:"following"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
}

type FollowRequest struct {
	Address string `json:"address"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	Address string `json:"address"`
}

type UnfollowResponse struct{}

type GetFollowersRequest struct {
	Address string `json:"address"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetFollowersResponse struct {
	Followers []Follower `json:"followers"`
}

type GetFollowingRequest struct {
	Address string `json:"address"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetFollowingResponse struct {
	Following []Follower `json:"following"`
}
