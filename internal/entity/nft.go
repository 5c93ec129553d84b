package entity

import (
	"time"

	"github.com/dotway-lab/questboard/pkg/enum"
)

type Rarity string

var (
	Common    = enum.New(Rarity("common"))
	Uncommon  = enum.New(Rarity("uncommon"))
	Rare      = enum.New(Rarity("rare"))
	Epic      = enum.New(Rarity("epic"))
	Legendary = enum.New(Rarity("legendary"))
)

type NFT struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Rarity      Rarity     `json:"rarity"`
	Claimable   bool       `json:"claimable"`
	ClaimPrice  uint64     `json:"claimPrice,omitempty"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
}

func (n *NFT) IsOwned() bool {
	return n.ClaimedAt != nil
}
