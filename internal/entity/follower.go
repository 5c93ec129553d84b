package entity

import "time"

type Follower struct {
	CreatedAt time.Time

	FollowerAddress  string `gorm:"primaryKey;size:64"`
	FollowingAddress string `gorm:"primaryKey;size:64;index"`
}
