package entity

import "time"

// User is the row of a profile in the hosted database.
type User struct {
	Base
	WalletAddress string `gorm:"unique"`
	Username      string
	Avatar        string
	Bio           string
	XP            uint64
	Level         uint64
	Twitter       string
	Telegram      string
	Discord       string
	Email         string
	JoinedAt      time.Time
}
