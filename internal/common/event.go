package common

import "github.com/dotway-lab/questboard/pkg/enum"

type EventType string

var (
	EventQuestStarted   = enum.New(EventType("quest_started"))
	EventQuestVerified  = enum.New(EventType("quest_verified"))
	EventQuestCompleted = enum.New(EventType("quest_completed"))
	EventXPGranted      = enum.New(EventType("xp_granted"))
	EventNFTClaimed     = enum.New(EventType("nft_claimed"))
	EventProfileUpdated = enum.New(EventType("profile_updated"))
)

// Event is published to the message broker after every state change of a
// quest board session.
type Event struct {
	Type      EventType      `json:"type"`
	SessionID string         `json:"session_id"`
	Address   string         `json:"address"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt int64          `json:"created_at"`
}
