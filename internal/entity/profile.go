package entity

import "time"

const XPPerLevel = 1000

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Profile is the player profile of a wallet address. It is persisted as JSON
// in the device store and mirrored into the users table.
type Profile struct {
	ID       string    `json:"id"`
	Address  string    `json:"address"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar,omitempty"`
	XP       uint64    `json:"xp"`
	Level    uint64    `json:"level"`
	Bio      string    `json:"bio,omitempty"`
	Social   Social    `json:"social"`
	JoinedAt time.Time `json:"joinedAt"`
}

func LevelOf(xp uint64) uint64 {
	return xp/XPPerLevel + 1
}

// AddXP increases the xp and keeps the level in sync.
func (p *Profile) AddXP(amount uint64) {
	p.XP += amount
	p.Level = LevelOf(p.XP)
}
