package domain

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/questboard"
	"github.com/dotway-lab/questboard/internal/model"
)

type NFTDomain interface {
	GetList(context.Context, *model.GetNFTsRequest) (*model.GetNFTsResponse, error)
	Claim(context.Context, *model.ClaimNFTRequest) (*model.ClaimNFTResponse, error)
}

type nftDomain struct {
	manager *questboard.Manager
}

func NewNFTDomain(manager *questboard.Manager) *nftDomain {
	return &nftDomain{manager: manager}
}

func (d *nftDomain) GetList(ctx context.Context, req *model.GetNFTsRequest) (*model.GetNFTsResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	nfts, err := board.NFTs(ctx)
	if err != nil {
		return nil, err
	}

	result := []model.NFT{}
	for _, n := range nfts {
		result = append(result, convertNFT(n))
	}

	return &model.GetNFTsResponse{NFTs: result}, nil
}

func (d *nftDomain) Claim(ctx context.Context, req *model.ClaimNFTRequest) (*model.ClaimNFTResponse, error) {
	board, err := sessionBoard(ctx, d.manager)
	if err != nil {
		return nil, err
	}

	nft, err := board.ClaimNFT(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.ClaimNFTResponse{NFT: convertNFT(nft), Profile: convertProfile(board.Profile())}, nil
}
