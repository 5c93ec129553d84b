package entity

import "time"

type Migration struct {
	Version   string `gorm:"primaryKey"`
	CreatedAt time.Time
}
