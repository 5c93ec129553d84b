package model

type GetWalletAssetsRequest struct {
	Address string `json:"address"`
}

type GetWalletAssetsResponse struct {
	Assets    WalletAssets `json:"assets"`
	Live      bool         `json:"live"`
	Synthetic []string     `json:"synthetic,omitempty"`
	Reason    string       `json:"reason,omitempty"`
}
