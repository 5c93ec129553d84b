package model

type GetNFTsRequest struct{}

type GetNFTsResponse struct {
	NFTs []NFT `json:"nfts"`
}

type ClaimNFTRequest struct {
	ID string `json:"id"`
}

type ClaimNFTResponse struct {
	NFT     NFT      `json:"nft"`
	Profile *Profile `json:"profile"`
}
