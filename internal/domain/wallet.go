package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/domain/wallet"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/pkg/errorx"
)

type WalletDomain interface {
	GetAssets(context.Context, *model.GetWalletAssetsRequest) (*model.GetWalletAssetsResponse, error)
}

type walletDomain struct {
	manager      *questboard.Manager
	walletReader wallet.Reader
}

func NewWalletDomain(manager *questboard.Manager, walletReader wallet.Reader) *walletDomain {
	return &walletDomain{manager: manager, walletReader: walletReader}
}

// GetAssets reads the assets of the requested address, or of the connected
// wallet if no address is given.
func (d *walletDomain) GetAssets(
	ctx context.Context, req *model.GetWalletAssetsRequest,
) (*model.GetWalletAssetsResponse, error) {
	address := req.Address
	if address == "" {
		board, err := sessionBoard(ctx, d.manager)
		if err != nil {
			return nil, err
		}

		address = board.Address()
	}

	if address == "" {
		return nil, errorx.New(errorx.BadRequest, "Wallet not connected")
	}

	result := d.walletReader.Lookup(ctx, address)
	return &model.GetWalletAssetsResponse{
		Assets:    convertAssets(result.Data),
		Live:      result.Live,
		Synthetic: result.Synthetic,
		Reason:    result.Reason,
	}, nil
}
