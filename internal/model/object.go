package model

type Social struct {
	Twitter  string `json:"twitter"`
	Telegram string `json:"telegram"`
	Discord  string `json:"discord"`
	Email    string `json:"email"`
}

type Profile struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	XP       uint64 `json:"xp"`
	Level    uint64 `json:"level"`
	Bio      string `json:"bio"`
	Social   Social `json:"social"`
	JoinedAt string `json:"joined_at"`
}

type QuestRewards struct {
	XP  uint64 `json:"xp"`
	NFT string `json:"nft,omitempty"`
}

type Quest struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Category         string       `json:"category"`
	Difficulty       string       `json:"difficulty"`
	VerificationType string       `json:"verification_type"`
	Requirements     []string     `json:"requirements"`
	Rewards          QuestRewards `json:"rewards"`
	IsDaily          bool         `json:"is_daily"`
	IsWeekly         bool         `json:"is_weekly"`
	Status           string       `json:"status"`
	Progress         int          `json:"progress"`
	Verified         bool         `json:"verified"`
	CompletedAt      string       `json:"completed_at,omitempty"`
}

type NFT struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Rarity      string `json:"rarity"`
	Claimable   bool   `json:"claimable"`
	ClaimPrice  uint64 `json:"claim_price"`
	ClaimedAt   string `json:"claimed_at,omitempty"`
}

type UserStats struct {
	TotalXP         uint64 `json:"total_xp"`
	Level           uint64 `json:"level"`
	QuestsCompleted int    `json:"quests_completed"`
	NFTsOwned       int    `json:"nfts_owned"`
	CommunityRank   uint64 `json:"community_rank"`
}

type WalletAssets struct {
	Free           string `json:"free"`
	Locked         string `json:"locked"`
	Reserved       string `json:"reserved"`
	Staked         string `json:"staked"`
	TransfersCount int    `json:"transfers_count"`
	IsStaking      bool   `json:"is_staking"`
	NominatorCount int    `json:"nominator_count"`
}

type LeaderboardEntry struct {
	Address  string `json:"address"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	XP       uint64 `json:"xp"`
	Level    uint64 `json:"level"`
	Rank     int    `json:"rank"`
}

type Post struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type Follower struct {
	Address   string `json:"address"`
	Username  string `json:"username,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"created_at"`
}
