package model

type GetLeaderboardRequest struct {
	Limit int `json:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
