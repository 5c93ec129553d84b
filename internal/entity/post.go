package entity

type Post struct {
	SnowFlakeBase

	AuthorAddress string `gorm:"index"`
	Content       string `gorm:"type:text"`
}
