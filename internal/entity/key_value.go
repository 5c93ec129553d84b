package entity

import "time"

type KeyValue struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
