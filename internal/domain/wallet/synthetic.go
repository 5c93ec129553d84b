package wallet

import (
	"math"

	"github.com/shopspring/decimal"
)

// synthetic derives plausible assets from the address so the same address
// always shows the same numbers.
func synthetic(address string) Assets {
	hash := 0
	for _, c := range address {
		hash += int(c)
	}

	random := func(seed int) float64 {
		return math.Abs(math.Mod(math.Sin(float64(seed))*10000, 1))
	}

	return Assets{
		Free:           decimal.NewFromFloat(random(hash)*900 + 100).Round(4),
		Locked:         decimal.NewFromFloat(random(hash+1)*45 + 5).Round(4),
		Reserved:       decimal.NewFromFloat(random(hash+2)*8 + 2).Round(4),
		TransfersCount: int(random(hash+3)*90) + 10,
		Staked:         decimal.NewFromFloat(random(hash+4)*80 + 20).Round(2),
		IsStaking:      random(hash+5) > 0.3,
		NominatorCount: int(random(hash+6)*4) + 1,
	}
}
