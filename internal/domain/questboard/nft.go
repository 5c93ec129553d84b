package questboard

import (
	"context"
	"time"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

const defaultNFTClaimBonus = 250

type nftLedger struct {
	nfts  []entity.NFT
	index map[string]int
}

func newNFTLedger(nfts []entity.NFT) *nftLedger {
	l := &nftLedger{nfts: nfts, index: map[string]int{}}
	for i, n := range nfts {
		l.index[n.ID] = i
	}

	return l
}

func (l *nftLedger) get(id string) (*entity.NFT, error) {
	i, ok := l.index[id]
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found nft %s", id)
	}

	return &l.nfts[i], nil
}

func (l *nftLedger) list() []entity.NFT {
	return append([]entity.NFT{}, l.nfts...)
}

func (l *nftLedger) claim(id string, now time.Time) (*entity.NFT, error) {
	n, err := l.get(id)
	if err != nil {
		return nil, err
	}

	if n.IsOwned() {
		return nil, errorx.New(errorx.InvalidTransition, "NFT %s is already claimed", id)
	}

	if !n.Claimable {
		return nil, errorx.New(errorx.InvalidTransition, "NFT %s is not claimable", id)
	}

	n.Claimable = false
	n.ClaimedAt = &now
	return n, nil
}

// unlock makes a locked NFT claimable. It returns false if the NFT does not
// exist, is owned or is already claimable.
func (l *nftLedger) unlock(id string) bool {
	n, err := l.get(id)
	if err != nil || n.IsOwned() || n.Claimable {
		return false
	}

	n.Claimable = true
	return true
}

func (l *nftLedger) lock(id string) {
	if n, err := l.get(id); err == nil && !n.IsOwned() {
		n.Claimable = false
	}
}

func (l *nftLedger) ownedCount() int {
	count := 0
	for _, n := range l.nfts {
		if n.IsOwned() {
			count++
		}
	}

	return count
}

type nftEvent struct {
	NFTID  string `structs:"nft_id"`
	Rarity string `structs:"rarity"`
	Bonus  uint64 `structs:"bonus"`
}

func (b *Board) NFTs(ctx context.Context) ([]entity.NFT, error) {
	var nfts []entity.NFT
	err := b.do(ctx, func() error {
		nfts = b.nfts.list()
		return nil
	})

	return nfts, err
}

// ClaimNFT takes ownership of a claimable NFT and grants the claim bonus.
func (b *Board) ClaimNFT(ctx context.Context, id string) (entity.NFT, error) {
	bonus := xcontext.Configs(ctx).Quest.NFTClaimBonus
	if bonus == 0 {
		bonus = defaultNFTClaimBonus
	}

	var nft entity.NFT
	err := b.do(ctx, func() error {
		n, err := b.nfts.claim(id, time.Now())
		if err != nil {
			return err
		}

		mark := len(b.pendingEvents)
		b.emit(common.EventNFTClaimed, nftEvent{NFTID: n.ID, Rarity: string(n.Rarity), Bonus: bonus})
		if err := b.grantXP(ctx, bonus, "nft:"+n.ID); err != nil {
			n.Claimable = true
			n.ClaimedAt = nil
			b.pendingEvents = b.pendingEvents[:mark]
			return err
		}

		common.PromCounters[common.NFTClaimedTotal].WithLabelValues(string(n.Rarity)).Inc()

		nft = *n
		return nil
	})
	return nft, err
}
