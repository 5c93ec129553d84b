package entity

import (
	"time"

	"github.com/dotway-lab/questboard/pkg/enum"
)

type QuestCategory string

var (
	SocialQuest    = enum.New(QuestCategory("social"))
	OnchainQuest   = enum.New(QuestCategory("onchain"))
	LearningQuest  = enum.New(QuestCategory("learning"))
	CommunityQuest = enum.New(QuestCategory("community"))
)

type QuestDifficulty string

var (
	Beginner     = enum.New(QuestDifficulty("beginner"))
	Intermediate = enum.New(QuestDifficulty("intermediate"))
	Advanced     = enum.New(QuestDifficulty("advanced"))
)

type VerificationType string

var (
	ManualVerification    = enum.New(VerificationType("manual"))
	AutomaticVerification = enum.New(VerificationType("automatic"))
)

type QuestStatus string

var (
	QuestAvailable = enum.New(QuestStatus("available"))
	QuestActive    = enum.New(QuestStatus("active"))
	QuestCompleted = enum.New(QuestStatus("completed"))
)

type QuestRewards struct {
	XP  uint64 `json:"xp"`
	NFT string `json:"nft,omitempty"`
}

type Quest struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Category         QuestCategory    `json:"category"`
	Difficulty       QuestDifficulty  `json:"difficulty"`
	VerificationType VerificationType `json:"verificationType"`
	Requirements     []string         `json:"requirements"`
	Rewards          QuestRewards     `json:"rewards"`
	IsDaily          bool             `json:"isDaily,omitempty"`
	IsWeekly         bool             `json:"isWeekly,omitempty"`
	ValidationData   Map              `json:"-"`

	Status      QuestStatus `json:"status"`
	Progress    int         `json:"progress"`
	Verified    bool        `json:"verified"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

func (q *Quest) IsAutomatic() bool {
	return q.VerificationType == AutomaticVerification
}
